package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

type IGoalRepository interface {
	Insert(ctx context.Context, goal *db_models.Goal) error
	List(ctx context.Context, accountID uuid.UUID) ([]db_models.Goal, error)
	Find(ctx context.Context, accountID uuid.UUID, id string) (*db_models.Goal, error)
	Update(ctx context.Context, goal *db_models.Goal) error
	Delete(ctx context.Context, accountID uuid.UUID, id string) error
	CountByStatus(ctx context.Context, accountID uuid.UUID, status db_models.GoalStatus) (int64, error)
}

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) IGoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Insert(ctx context.Context, goal *db_models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *GoalRepository) List(ctx context.Context, accountID uuid.UUID) ([]db_models.Goal, error) {
	var goals []db_models.Goal
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *GoalRepository) Find(ctx context.Context, accountID uuid.UUID, id string) (*db_models.Goal, error) {
	var goal db_models.Goal
	err := r.db.WithContext(ctx).
		First(&goal, "id = ? AND account_id = ?", id, accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &goal, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *db_models.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *GoalRepository) Delete(ctx context.Context, accountID uuid.UUID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&db_models.Goal{}).Error
}

func (r *GoalRepository) CountByStatus(ctx context.Context, accountID uuid.UUID, status db_models.GoalStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Goal{}).
		Where("account_id = ? AND status = ?", accountID, status).
		Count(&n).Error
	return n, err
}
