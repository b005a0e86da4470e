package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

type IAssessmentRepository interface {
	InsertAssessment(ctx context.Context, a *db_models.Assessment) error
	ListAssessments(ctx context.Context, accountID uuid.UUID) ([]db_models.Assessment, error)
	ListAssessmentsBetween(ctx context.Context, accountID uuid.UUID, from, to int64) ([]db_models.Assessment, error)
	FindAssessment(ctx context.Context, accountID uuid.UUID, id string) (*db_models.Assessment, error)
	CountAssessmentsBetween(ctx context.Context, accountID uuid.UUID, from, to int64) (int64, error)

	InsertSkillsCheck(ctx context.Context, s *db_models.SkillsCheck) error
	ListSkillsChecks(ctx context.Context, accountID uuid.UUID) ([]db_models.SkillsCheck, error)
	ListSkillsChecksBetween(ctx context.Context, accountID uuid.UUID, from, to int64) ([]db_models.SkillsCheck, error)

	InsertControlCircle(ctx context.Context, c *db_models.ControlCircle) error
	ListControlCircles(ctx context.Context, accountID uuid.UUID) ([]db_models.ControlCircle, error)
	CountControlCirclesBetween(ctx context.Context, accountID uuid.UUID, from, to int64) (int64, error)
}

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) IAssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) InsertAssessment(ctx context.Context, a *db_models.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) ListAssessments(ctx context.Context, accountID uuid.UUID) ([]db_models.Assessment, error) {
	var out []db_models.Assessment
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssessmentRepository) ListAssessmentsBetween(ctx context.Context, accountID uuid.UUID, from, to int64) ([]db_models.Assessment, error) {
	var out []db_models.Assessment
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND created_at BETWEEN ? AND ?", accountID, from, to).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssessmentRepository) FindAssessment(ctx context.Context, accountID uuid.UUID, id string) (*db_models.Assessment, error) {
	var a db_models.Assessment
	err := r.db.WithContext(ctx).
		First(&a, "id = ? AND account_id = ?", id, accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

func (r *AssessmentRepository) CountAssessmentsBetween(ctx context.Context, accountID uuid.UUID, from, to int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Assessment{}).
		Where("account_id = ? AND created_at BETWEEN ? AND ?", accountID, from, to).
		Count(&n).Error
	return n, err
}

func (r *AssessmentRepository) InsertSkillsCheck(ctx context.Context, s *db_models.SkillsCheck) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AssessmentRepository) ListSkillsChecks(ctx context.Context, accountID uuid.UUID) ([]db_models.SkillsCheck, error) {
	var out []db_models.SkillsCheck
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssessmentRepository) ListSkillsChecksBetween(ctx context.Context, accountID uuid.UUID, from, to int64) ([]db_models.SkillsCheck, error) {
	var out []db_models.SkillsCheck
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND created_at BETWEEN ? AND ?", accountID, from, to).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssessmentRepository) InsertControlCircle(ctx context.Context, c *db_models.ControlCircle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *AssessmentRepository) ListControlCircles(ctx context.Context, accountID uuid.UUID) ([]db_models.ControlCircle, error) {
	var out []db_models.ControlCircle
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssessmentRepository) CountControlCirclesBetween(ctx context.Context, accountID uuid.UUID, from, to int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.ControlCircle{}).
		Where("account_id = ? AND created_at BETWEEN ? AND ?", accountID, from, to).
		Count(&n).Error
	return n, err
}
