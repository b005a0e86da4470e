package services

import (
	"context"

	"gorm.io/datatypes"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	"mindcaddy/pkg/utils"
)

type ScenarioServiceInterface interface {
	GetScenarios(ctx context.Context) ([]response_models.ScenarioResponse, error)
	GetScenarioByID(ctx context.Context, id string) (response_models.ScenarioResponse, error)
	CreateScenario(ctx context.Context, request request_models.CreateScenarioRequest) (response_models.ScenarioResponse, error)
}

type ScenarioService struct {
	scenarioRepo repositories.IScenarioRepository
}

func NewScenarioService(scenarioRepo repositories.IScenarioRepository) ScenarioServiceInterface {
	return &ScenarioService{scenarioRepo: scenarioRepo}
}

func (s *ScenarioService) GetScenarios(ctx context.Context) ([]response_models.ScenarioResponse, error) {
	scenarios, err := s.scenarioRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ScenarioResponse, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, toScenarioResponse(sc))
	}
	return out, nil
}

func (s *ScenarioService) GetScenarioByID(ctx context.Context, id string) (response_models.ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(ctx, id)
	if err != nil {
		return response_models.ScenarioResponse{}, utils.ErrDatabaseError
	}
	if scenario == nil {
		return response_models.ScenarioResponse{}, utils.RecordNotFound
	}
	return toScenarioResponse(*scenario), nil
}

func (s *ScenarioService) CreateScenario(ctx context.Context, request request_models.CreateScenarioRequest) (response_models.ScenarioResponse, error) {
	scenario := &db_models.Scenario{
		Title:          request.Title,
		Situation:      request.Situation,
		CoachingPoints: datatypes.JSON(request.CoachingPoints),
	}

	if err := s.scenarioRepo.Create(ctx, scenario); err != nil {
		return response_models.ScenarioResponse{}, utils.ErrDatabaseError
	}

	return toScenarioResponse(*scenario), nil
}

func toScenarioResponse(sc db_models.Scenario) response_models.ScenarioResponse {
	return response_models.ScenarioResponse{
		ID:             sc.ID.String(),
		Title:          sc.Title,
		Situation:      sc.Situation,
		CoachingPoints: []byte(sc.CoachingPoints),
	}
}
