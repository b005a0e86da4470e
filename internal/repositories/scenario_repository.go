package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

type IScenarioRepository interface {
	List(ctx context.Context) ([]db_models.Scenario, error)
	FindByID(ctx context.Context, id string) (*db_models.Scenario, error)
	Create(ctx context.Context, scenario *db_models.Scenario) error
}

type ScenarioRepository struct {
	db *gorm.DB
}

func NewScenarioRepository(db *gorm.DB) IScenarioRepository {
	return &ScenarioRepository{db: db}
}

func (r *ScenarioRepository) List(ctx context.Context) ([]db_models.Scenario, error) {
	var scenarios []db_models.Scenario
	err := r.db.WithContext(ctx).Order("title").Find(&scenarios).Error
	if err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (r *ScenarioRepository) FindByID(ctx context.Context, id string) (*db_models.Scenario, error) {
	var scenario db_models.Scenario
	err := r.db.WithContext(ctx).First(&scenario, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &scenario, nil
}

func (r *ScenarioRepository) Create(ctx context.Context, scenario *db_models.Scenario) error {
	return r.db.WithContext(ctx).Create(scenario).Error
}
