package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	"mindcaddy/pkg/utils"
)

type GoalServiceInterface interface {
	CreateGoal(ctx context.Context, accountID uuid.UUID, request request_models.CreateGoalRequest) (response_models.GoalResponse, error)
	ListGoals(ctx context.Context, accountID uuid.UUID) ([]response_models.GoalResponse, error)
	UpdateGoal(ctx context.Context, accountID uuid.UUID, id string, request request_models.UpdateGoalRequest) (response_models.GoalResponse, error)
	DeleteGoal(ctx context.Context, accountID uuid.UUID, id string) error
}

type GoalService struct {
	goalRepo repositories.IGoalRepository
}

func NewGoalService(goalRepo repositories.IGoalRepository) GoalServiceInterface {
	return &GoalService{goalRepo: goalRepo}
}

func (s *GoalService) CreateGoal(ctx context.Context, accountID uuid.UUID, request request_models.CreateGoalRequest) (response_models.GoalResponse, error) {
	goal := &db_models.Goal{
		AccountID:   accountID,
		Title:       request.Title,
		Description: request.Description,
		TargetDate:  request.TargetDate,
		Status:      db_models.GoalStatusActive,
	}

	if err := s.goalRepo.Insert(ctx, goal); err != nil {
		return response_models.GoalResponse{}, utils.ErrDatabaseError
	}

	return toGoalResponse(*goal), nil
}

func (s *GoalService) ListGoals(ctx context.Context, accountID uuid.UUID) ([]response_models.GoalResponse, error) {
	goals, err := s.goalRepo.List(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return out, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, accountID uuid.UUID, id string, request request_models.UpdateGoalRequest) (response_models.GoalResponse, error) {
	goal, err := s.goalRepo.Find(ctx, accountID, id)
	if err != nil {
		return response_models.GoalResponse{}, utils.ErrDatabaseError
	}
	if goal == nil {
		return response_models.GoalResponse{}, utils.RecordNotFound
	}

	if request.Title != "" {
		goal.Title = request.Title
	}
	if request.Description != "" {
		goal.Description = request.Description
	}
	if request.TargetDate != nil {
		goal.TargetDate = request.TargetDate
	}
	if request.Status != "" {
		goal.Status = db_models.GoalStatus(request.Status)
		if goal.Status == db_models.GoalStatusCompleted && goal.CompletedAt == nil {
			now := time.Now().Unix()
			goal.CompletedAt = &now
		}
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return response_models.GoalResponse{}, utils.ErrDatabaseError
	}

	return toGoalResponse(*goal), nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, accountID uuid.UUID, id string) error {
	goal, err := s.goalRepo.Find(ctx, accountID, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if goal == nil {
		return utils.RecordNotFound
	}

	if err := s.goalRepo.Delete(ctx, accountID, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func toGoalResponse(g db_models.Goal) response_models.GoalResponse {
	return response_models.GoalResponse{
		ID:          g.ID.String(),
		Title:       g.Title,
		Description: g.Description,
		TargetDate:  g.TargetDate,
		Status:      string(g.Status),
		CompletedAt: g.CompletedAt,
		CreatedAt:   g.CreatedAt,
	}
}
