package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

type IBillingRepository interface {
	InsertTransaction(ctx context.Context, txn *db_models.Transaction) error
	GetTransactionByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Transaction, error)
	MarkTransactionFailed(ctx context.Context, id uuid.UUID) error
	MarkTransactionPaid(ctx context.Context, id uuid.UUID, paidAt int64) error
	SetTransactionMetadata(ctx context.Context, id uuid.UUID, metadata []byte) error

	// AttachTransactionAccount claims an orphan transaction (checkout started
	// before signup) for the given account. Already-attached rows are left alone.
	AttachTransactionAccount(ctx context.Context, providerTxnID string, accountID uuid.UUID) error

	HasSubscriptionForProviderSubID(ctx context.Context, providerSubID string) (bool, error)
	InsertSubscription(ctx context.Context, sub *db_models.Subscription) error
}

type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) IBillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) InsertTransaction(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *BillingRepository) GetTransactionByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "provider_txn_id = ?", providerTxnID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &txn, nil
}

func (r *BillingRepository) MarkTransactionFailed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", id).
		Update("status", db_models.TxnStatusFailed).Error
}

func (r *BillingRepository) MarkTransactionPaid(ctx context.Context, id uuid.UUID, paidAt int64) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  db_models.TxnStatusPaid,
			"paid_at": paidAt,
		}).Error
}

func (r *BillingRepository) SetTransactionMetadata(ctx context.Context, id uuid.UUID, metadata []byte) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", id).
		Update("metadata", metadata).Error
}

func (r *BillingRepository) AttachTransactionAccount(ctx context.Context, providerTxnID string, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("provider_txn_id = ? AND account_id IS NULL", providerTxnID).
		Update("account_id", accountID).Error
}

func (r *BillingRepository) HasSubscriptionForProviderSubID(ctx context.Context, providerSubID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("provider_sub_id = ?", providerSubID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BillingRepository) InsertSubscription(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}
