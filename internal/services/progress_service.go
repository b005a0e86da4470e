package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/response_models"
	"mindcaddy/internal/repositories"
	"mindcaddy/pkg/utils"
)

const defaultProgressWindow = 30 * 24 * time.Hour

type ProgressServiceInterface interface {
	GetSummary(ctx context.Context, accountID uuid.UUID, from, to int64) (response_models.ProgressSummary, error)
}

type ProgressService struct {
	assessmentRepo repositories.IAssessmentRepository
	goalRepo       repositories.IGoalRepository
}

func NewProgressService(assessmentRepo repositories.IAssessmentRepository, goalRepo repositories.IGoalRepository) ProgressServiceInterface {
	return &ProgressService{
		assessmentRepo: assessmentRepo,
		goalRepo:       goalRepo,
	}
}

func (s *ProgressService) GetSummary(ctx context.Context, accountID uuid.UUID, from, to int64) (response_models.ProgressSummary, error) {
	from, to = normalizeRange(from, to)

	summary := response_models.ProgressSummary{From: from, To: to}

	assessments, err := s.assessmentRepo.ListAssessmentsBetween(ctx, accountID, from, to)
	if err != nil {
		return summary, utils.ErrDatabaseError
	}
	summary.AssessmentsTaken = int64(len(assessments))
	if len(assessments) > 0 {
		total := 0
		for _, a := range assessments {
			total += a.Score
		}
		summary.AverageScore = float64(total) / float64(len(assessments))
		summary.ScoreTrend = float64(assessments[len(assessments)-1].Score - assessments[0].Score)
	}

	checks, err := s.assessmentRepo.ListSkillsChecksBetween(ctx, accountID, from, to)
	if err != nil {
		return summary, utils.ErrDatabaseError
	}
	summary.SkillsChecksTaken = int64(len(checks))
	summary.FocusAreas = distinctFocusAreas(checks)

	circles, err := s.assessmentRepo.CountControlCirclesBetween(ctx, accountID, from, to)
	if err != nil {
		return summary, utils.ErrDatabaseError
	}
	summary.ControlCirclesDone = circles

	active, err := s.goalRepo.CountByStatus(ctx, accountID, db_models.GoalStatusActive)
	if err != nil {
		return summary, utils.ErrDatabaseError
	}
	summary.GoalsActive = active

	completed, err := s.goalRepo.CountByStatus(ctx, accountID, db_models.GoalStatusCompleted)
	if err != nil {
		return summary, utils.ErrDatabaseError
	}
	summary.GoalsCompleted = completed

	return summary, nil
}

// normalizeRange fills missing bounds (default window is the last 30 days)
// and swaps them when given out of order.
func normalizeRange(from, to int64) (int64, int64) {
	if to <= 0 {
		to = time.Now().Unix()
	}
	if from <= 0 {
		from = to - int64(defaultProgressWindow.Seconds())
	}
	if from > to {
		from, to = to, from
	}
	return from, to
}

func distinctFocusAreas(checks []db_models.SkillsCheck) []string {
	seen := make(map[string]struct{}, len(checks))
	var out []string
	for _, c := range checks {
		if c.Focus == "" {
			continue
		}
		if _, ok := seen[c.Focus]; ok {
			continue
		}
		seen[c.Focus] = struct{}{}
		out = append(out, c.Focus)
	}
	return out
}
