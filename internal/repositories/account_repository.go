package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	FindByID(ctx context.Context, id string) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	FindByUsername(ctx context.Context, username string) (*db_models.Account, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateEntitlement(ctx context.Context, id string, tier db_models.SubscriptionTier, isSubscribed bool, startsAt, endsAt *int64) error
	ListAll(ctx context.Context) ([]db_models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindByID(ctx context.Context, id string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "username = ?", username).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// UpdateEntitlement rewrites the entitlement snapshot in one statement so the
// tier/is_subscribed pair can never be half-updated.
func (a *accountRepository) UpdateEntitlement(ctx context.Context, id string, tier db_models.SubscriptionTier, isSubscribed bool, startsAt, endsAt *int64) error {
	return a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subscription_tier":      tier,
			"is_subscribed":          isSubscribed,
			"subscription_starts_at": startsAt,
			"subscription_ends_at":   endsAt,
		}).Error
}

func (a *accountRepository) ListAll(ctx context.Context) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := a.db.WithContext(ctx).Order("created_at DESC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
