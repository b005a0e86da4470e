package services

import (
	"context"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	"mindcaddy/pkg/utils"
)

func toPlanResponse(plan db_models.Plan) response_models.SubscriptionPlan {
	return response_models.SubscriptionPlan{
		ID:          plan.ID.String(),
		Code:        plan.Code,
		Name:        plan.Name,
		Description: plan.Description,
		Price:       plan.PriceMinor,
		Currency:    plan.Currency,
		Period:      string(plan.Period),
		TrialDays:   plan.TrialDays,
		IsActive:    plan.IsActive,
	}
}

type PlanServiceInterface interface {
	GetPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error)
	GetPlanByCode(ctx context.Context, code string) (response_models.SubscriptionPlan, error)
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
	}
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func (p *PlanService) GetPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error) {
	plans, err := p.planRepo.GetActivePlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SubscriptionPlan, 0, len(plans))
	for _, plan := range plans {
		result = append(result, toPlanResponse(plan))
	}

	return result, nil
}

func (p *PlanService) GetPlanByCode(ctx context.Context, code string) (response_models.SubscriptionPlan, error) {
	plan, err := p.planRepo.GetPlanByCode(ctx, code)
	if err != nil {
		return response_models.SubscriptionPlan{}, utils.ErrDatabaseError
	}

	if plan == nil {
		return response_models.SubscriptionPlan{}, utils.ErrPlanNotFound
	}

	return toPlanResponse(*plan), nil
}
