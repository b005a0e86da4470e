package services

import (
	"context"
	"log"

	"gorm.io/datatypes"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	"mindcaddy/pkg/utils"
)

type TechniqueServiceInterface interface {
	GetTechniques(ctx context.Context) ([]response_models.TechniqueResponse, error)
	GetTechniqueByID(ctx context.Context, id string) (response_models.TechniqueResponse, error)
	CreateTechnique(ctx context.Context, request request_models.CreateTechniqueRequest) (response_models.TechniqueResponse, error)
}

type TechniqueService struct {
	techniqueRepo repositories.ITechniqueRepository
	coachClient   utils.CoachClientInterface
}

func NewTechniqueService(techniqueRepo repositories.ITechniqueRepository, coachClient utils.CoachClientInterface) TechniqueServiceInterface {
	return &TechniqueService{
		techniqueRepo: techniqueRepo,
		coachClient:   coachClient,
	}
}

func (s *TechniqueService) GetTechniques(ctx context.Context) ([]response_models.TechniqueResponse, error) {
	techniques, err := s.techniqueRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TechniqueResponse, 0, len(techniques))
	for _, t := range techniques {
		out = append(out, toTechniqueResponse(t))
	}
	return out, nil
}

func (s *TechniqueService) GetTechniqueByID(ctx context.Context, id string) (response_models.TechniqueResponse, error) {
	technique, err := s.techniqueRepo.FindByID(ctx, id)
	if err != nil {
		return response_models.TechniqueResponse{}, utils.ErrDatabaseError
	}
	if technique == nil {
		return response_models.TechniqueResponse{}, utils.RecordNotFound
	}
	return toTechniqueResponse(*technique), nil
}

func (s *TechniqueService) CreateTechnique(ctx context.Context, request request_models.CreateTechniqueRequest) (response_models.TechniqueResponse, error) {
	technique := &db_models.Technique{
		Name:     request.Name,
		Category: request.Category,
		Summary:  request.Summary,
		Steps:    datatypes.JSON(request.Steps),
	}

	// The embedding feeds chat context retrieval. A catalog entry without one
	// is still usable through the list endpoints, so failures only log.
	embedding, err := s.coachClient.GetEmbedding(ctx, request.Name+": "+request.Summary)
	if err != nil {
		log.Printf("embedding generation failed for technique %s: %v", request.Name, err)
	} else {
		technique.Embedding = &embedding
	}

	if err := s.techniqueRepo.Create(ctx, technique); err != nil {
		return response_models.TechniqueResponse{}, utils.ErrDatabaseError
	}

	return toTechniqueResponse(*technique), nil
}

func toTechniqueResponse(t db_models.Technique) response_models.TechniqueResponse {
	return response_models.TechniqueResponse{
		ID:       t.ID.String(),
		Name:     t.Name,
		Category: t.Category,
		Summary:  t.Summary,
		Steps:    []byte(t.Steps),
	}
}
