package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"mindcaddy/internal/models/db_models"
)

type fakeAssessmentRepo struct {
	assessments []db_models.Assessment
	checks      []db_models.SkillsCheck
	circles     []db_models.ControlCircle
}

func (r *fakeAssessmentRepo) InsertAssessment(ctx context.Context, a *db_models.Assessment) error {
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}
	r.assessments = append(r.assessments, *a)
	return nil
}

func (r *fakeAssessmentRepo) ListAssessments(ctx context.Context, accountID uuid.UUID) ([]db_models.Assessment, error) {
	return r.assessments, nil
}

func (r *fakeAssessmentRepo) ListAssessmentsBetween(ctx context.Context, accountID uuid.UUID, from, to int64) ([]db_models.Assessment, error) {
	var out []db_models.Assessment
	for _, a := range r.assessments {
		if a.CreatedAt >= from && a.CreatedAt <= to {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) FindAssessment(ctx context.Context, accountID uuid.UUID, id string) (*db_models.Assessment, error) {
	return nil, nil
}

func (r *fakeAssessmentRepo) CountAssessmentsBetween(ctx context.Context, accountID uuid.UUID, from, to int64) (int64, error) {
	found, _ := r.ListAssessmentsBetween(ctx, accountID, from, to)
	return int64(len(found)), nil
}

func (r *fakeAssessmentRepo) InsertSkillsCheck(ctx context.Context, s *db_models.SkillsCheck) error {
	r.checks = append(r.checks, *s)
	return nil
}

func (r *fakeAssessmentRepo) ListSkillsChecks(ctx context.Context, accountID uuid.UUID) ([]db_models.SkillsCheck, error) {
	return r.checks, nil
}

func (r *fakeAssessmentRepo) ListSkillsChecksBetween(ctx context.Context, accountID uuid.UUID, from, to int64) ([]db_models.SkillsCheck, error) {
	var out []db_models.SkillsCheck
	for _, c := range r.checks {
		if c.CreatedAt >= from && c.CreatedAt <= to {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) InsertControlCircle(ctx context.Context, c *db_models.ControlCircle) error {
	r.circles = append(r.circles, *c)
	return nil
}

func (r *fakeAssessmentRepo) ListControlCircles(ctx context.Context, accountID uuid.UUID) ([]db_models.ControlCircle, error) {
	return r.circles, nil
}

func (r *fakeAssessmentRepo) CountControlCirclesBetween(ctx context.Context, accountID uuid.UUID, from, to int64) (int64, error) {
	var n int64
	for _, c := range r.circles {
		if c.CreatedAt >= from && c.CreatedAt <= to {
			n++
		}
	}
	return n, nil
}

type fakeGoalRepo struct {
	goals []db_models.Goal
}

func (r *fakeGoalRepo) Insert(ctx context.Context, goal *db_models.Goal) error {
	r.goals = append(r.goals, *goal)
	return nil
}

func (r *fakeGoalRepo) List(ctx context.Context, accountID uuid.UUID) ([]db_models.Goal, error) {
	return r.goals, nil
}

func (r *fakeGoalRepo) Find(ctx context.Context, accountID uuid.UUID, id string) (*db_models.Goal, error) {
	return nil, nil
}

func (r *fakeGoalRepo) Update(ctx context.Context, goal *db_models.Goal) error { return nil }

func (r *fakeGoalRepo) Delete(ctx context.Context, accountID uuid.UUID, id string) error { return nil }

func (r *fakeGoalRepo) CountByStatus(ctx context.Context, accountID uuid.UUID, status db_models.GoalStatus) (int64, error) {
	var n int64
	for _, g := range r.goals {
		if g.Status == status {
			n++
		}
	}
	return n, nil
}

func TestProgressSummary_Aggregates(t *testing.T) {
	t.Parallel()

	now := time.Now().Unix()
	day := int64(24 * 60 * 60)

	assessments := &fakeAssessmentRepo{
		assessments: []db_models.Assessment{
			{BaseModel: db_models.BaseModel{CreatedAt: now - 20*day}, Score: 40},
			{BaseModel: db_models.BaseModel{CreatedAt: now - 10*day}, Score: 55},
			{BaseModel: db_models.BaseModel{CreatedAt: now - 2*day}, Score: 70},
			// Outside the window, must not count.
			{BaseModel: db_models.BaseModel{CreatedAt: now - 90*day}, Score: 5},
		},
		checks: []db_models.SkillsCheck{
			{BaseModel: db_models.BaseModel{CreatedAt: now - 5*day}, Focus: "putting"},
			{BaseModel: db_models.BaseModel{CreatedAt: now - 4*day}, Focus: "putting"},
			{BaseModel: db_models.BaseModel{CreatedAt: now - 3*day}, Focus: "tee shots"},
		},
		circles: []db_models.ControlCircle{
			{BaseModel: db_models.BaseModel{CreatedAt: now - day}},
		},
	}
	goals := &fakeGoalRepo{goals: []db_models.Goal{
		{Status: db_models.GoalStatusActive},
		{Status: db_models.GoalStatusActive},
		{Status: db_models.GoalStatusCompleted},
		{Status: db_models.GoalStatusAbandoned},
	}}

	svc := NewProgressService(assessments, goals)

	summary, err := svc.GetSummary(context.Background(), uuid.New(), 0, 0)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if summary.AssessmentsTaken != 3 {
		t.Errorf("AssessmentsTaken = %d, want 3", summary.AssessmentsTaken)
	}
	if want := (40.0 + 55.0 + 70.0) / 3.0; summary.AverageScore != want {
		t.Errorf("AverageScore = %v, want %v", summary.AverageScore, want)
	}
	if summary.ScoreTrend != 30 {
		t.Errorf("ScoreTrend = %v, want 30", summary.ScoreTrend)
	}
	if summary.SkillsChecksTaken != 3 {
		t.Errorf("SkillsChecksTaken = %d, want 3", summary.SkillsChecksTaken)
	}
	if len(summary.FocusAreas) != 2 {
		t.Errorf("FocusAreas = %v, want two distinct areas", summary.FocusAreas)
	}
	if summary.ControlCirclesDone != 1 {
		t.Errorf("ControlCirclesDone = %d, want 1", summary.ControlCirclesDone)
	}
	if summary.GoalsActive != 2 || summary.GoalsCompleted != 1 {
		t.Errorf("goals = %d active / %d completed, want 2/1", summary.GoalsActive, summary.GoalsCompleted)
	}
}

func TestNormalizeRange(t *testing.T) {
	t.Parallel()

	from, to := normalizeRange(0, 0)
	if to <= from {
		t.Fatal("default range should be non-empty")
	}
	if got := to - from; got != int64(defaultProgressWindow.Seconds()) {
		t.Errorf("default window = %ds, want %v", got, defaultProgressWindow)
	}

	from, to = normalizeRange(500, 100)
	if from != 100 || to != 500 {
		t.Errorf("swapped range = (%d, %d), want (100, 500)", from, to)
	}

	from, to = normalizeRange(100, 200)
	if from != 100 || to != 200 {
		t.Errorf("explicit range = (%d, %d), want (100, 200)", from, to)
	}
}
