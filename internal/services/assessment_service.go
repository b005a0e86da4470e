package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"mindcaddy/internal/entitlement"
	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	"mindcaddy/pkg/utils"
)

// freeAssessmentsPerMonth bounds free-tier assessments; the
// unlimited-assessments feature (premium and up) removes the bound.
const freeAssessmentsPerMonth = 3

type AssessmentServiceInterface interface {
	CreateAssessment(ctx context.Context, accountID uuid.UUID, request request_models.CreateAssessmentRequest) (response_models.AssessmentResponse, error)
	ListAssessments(ctx context.Context, accountID uuid.UUID) ([]response_models.AssessmentResponse, error)
	GetAssessment(ctx context.Context, accountID uuid.UUID, id string) (response_models.AssessmentResponse, error)

	CreateSkillsCheck(ctx context.Context, accountID uuid.UUID, request request_models.CreateSkillsCheckRequest) (response_models.SkillsCheckResponse, error)
	ListSkillsChecks(ctx context.Context, accountID uuid.UUID) ([]response_models.SkillsCheckResponse, error)

	CreateControlCircle(ctx context.Context, accountID uuid.UUID, request request_models.CreateControlCircleRequest) (response_models.ControlCircleResponse, error)
	ListControlCircles(ctx context.Context, accountID uuid.UUID) ([]response_models.ControlCircleResponse, error)
}

type AssessmentService struct {
	assessmentRepo repositories.IAssessmentRepository
	accountRepo    repositories.AccountRepository
}

func NewAssessmentService(
	assessmentRepo repositories.IAssessmentRepository,
	accountRepo repositories.AccountRepository,
) AssessmentServiceInterface {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		accountRepo:    accountRepo,
	}
}

func (s *AssessmentService) CreateAssessment(ctx context.Context, accountID uuid.UUID, request request_models.CreateAssessmentRequest) (response_models.AssessmentResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID.String())
	if err != nil {
		return response_models.AssessmentResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AssessmentResponse{}, utils.ErrAccountNotFound
	}

	d := entitlement.Decide(entitlement.SignedIn(account), entitlement.FeatureUnlimitedAssessments)
	if d.Verdict != entitlement.VerdictAllow {
		from := time.Now().AddDate(0, -1, 0).Unix()
		taken, err := s.assessmentRepo.CountAssessmentsBetween(ctx, accountID, from, time.Now().Unix())
		if err != nil {
			return response_models.AssessmentResponse{}, utils.ErrDatabaseError
		}
		if taken >= freeAssessmentsPerMonth {
			return response_models.AssessmentResponse{}, utils.ErrAssessmentLimit
		}
	}

	a := &db_models.Assessment{
		AccountID: accountID,
		Answers:   datatypes.JSON(request.Answers),
		Score:     request.Score,
		Summary:   request.Summary,
	}

	if err := s.assessmentRepo.InsertAssessment(ctx, a); err != nil {
		return response_models.AssessmentResponse{}, utils.ErrDatabaseError
	}

	return toAssessmentResponse(*a), nil
}

func (s *AssessmentService) ListAssessments(ctx context.Context, accountID uuid.UUID) ([]response_models.AssessmentResponse, error) {
	assessments, err := s.assessmentRepo.ListAssessments(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, toAssessmentResponse(a))
	}
	return out, nil
}

func (s *AssessmentService) GetAssessment(ctx context.Context, accountID uuid.UUID, id string) (response_models.AssessmentResponse, error) {
	a, err := s.assessmentRepo.FindAssessment(ctx, accountID, id)
	if err != nil {
		return response_models.AssessmentResponse{}, utils.ErrDatabaseError
	}
	if a == nil {
		return response_models.AssessmentResponse{}, utils.RecordNotFound
	}
	return toAssessmentResponse(*a), nil
}

func (s *AssessmentService) CreateSkillsCheck(ctx context.Context, accountID uuid.UUID, request request_models.CreateSkillsCheckRequest) (response_models.SkillsCheckResponse, error) {
	check := &db_models.SkillsCheck{
		AccountID: accountID,
		Scores:    datatypes.JSON(request.Scores),
		Focus:     request.Focus,
	}

	if err := s.assessmentRepo.InsertSkillsCheck(ctx, check); err != nil {
		return response_models.SkillsCheckResponse{}, utils.ErrDatabaseError
	}

	return toSkillsCheckResponse(*check), nil
}

func (s *AssessmentService) ListSkillsChecks(ctx context.Context, accountID uuid.UUID) ([]response_models.SkillsCheckResponse, error) {
	checks, err := s.assessmentRepo.ListSkillsChecks(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SkillsCheckResponse, 0, len(checks))
	for _, c := range checks {
		out = append(out, toSkillsCheckResponse(c))
	}
	return out, nil
}

func (s *AssessmentService) CreateControlCircle(ctx context.Context, accountID uuid.UUID, request request_models.CreateControlCircleRequest) (response_models.ControlCircleResponse, error) {
	circle := &db_models.ControlCircle{
		AccountID:    accountID,
		InControl:    pq.StringArray(request.InControl),
		OutOfControl: pq.StringArray(request.OutOfControl),
		Reflection:   request.Reflection,
	}

	if err := s.assessmentRepo.InsertControlCircle(ctx, circle); err != nil {
		return response_models.ControlCircleResponse{}, utils.ErrDatabaseError
	}

	return toControlCircleResponse(*circle), nil
}

func (s *AssessmentService) ListControlCircles(ctx context.Context, accountID uuid.UUID) ([]response_models.ControlCircleResponse, error) {
	circles, err := s.assessmentRepo.ListControlCircles(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ControlCircleResponse, 0, len(circles))
	for _, c := range circles {
		out = append(out, toControlCircleResponse(c))
	}
	return out, nil
}

func toAssessmentResponse(a db_models.Assessment) response_models.AssessmentResponse {
	return response_models.AssessmentResponse{
		ID:        a.ID.String(),
		Answers:   []byte(a.Answers),
		Score:     a.Score,
		Summary:   a.Summary,
		CreatedAt: a.CreatedAt,
	}
}

func toSkillsCheckResponse(c db_models.SkillsCheck) response_models.SkillsCheckResponse {
	return response_models.SkillsCheckResponse{
		ID:        c.ID.String(),
		Scores:    []byte(c.Scores),
		Focus:     c.Focus,
		CreatedAt: c.CreatedAt,
	}
}

func toControlCircleResponse(c db_models.ControlCircle) response_models.ControlCircleResponse {
	return response_models.ControlCircleResponse{
		ID:           c.ID.String(),
		InControl:    []string(c.InControl),
		OutOfControl: []string(c.OutOfControl),
		Reflection:   c.Reflection,
		CreatedAt:    c.CreatedAt,
	}
}
