package repositories

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

type ITechniqueRepository interface {
	List(ctx context.Context) ([]db_models.Technique, error)
	FindByID(ctx context.Context, id string) (*db_models.Technique, error)
	Create(ctx context.Context, technique *db_models.Technique) error
	NearestToVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.Technique, error)
}

type TechniqueRepository struct {
	db *gorm.DB
}

func NewTechniqueRepository(db *gorm.DB) ITechniqueRepository {
	return &TechniqueRepository{db: db}
}

func (r *TechniqueRepository) List(ctx context.Context) ([]db_models.Technique, error) {
	var techniques []db_models.Technique
	err := r.db.WithContext(ctx).Order("category, name").Find(&techniques).Error
	if err != nil {
		return nil, err
	}
	return techniques, nil
}

func (r *TechniqueRepository) FindByID(ctx context.Context, id string) (*db_models.Technique, error) {
	var technique db_models.Technique
	err := r.db.WithContext(ctx).First(&technique, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &technique, nil
}

func (r *TechniqueRepository) Create(ctx context.Context, technique *db_models.Technique) error {
	return r.db.WithContext(ctx).Create(technique).Error
}

func (r *TechniqueRepository) NearestToVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.Technique, error) {
	var results []db_models.Technique

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM techniques
        WHERE embedding IS NOT NULL
          AND (1 - (embedding <=> $1)) > 0.5
        ORDER BY embedding <=> $1  -- Cosine distance (closer to 0 is better)
        LIMIT $2
    `

	err := r.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
