package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/models/request_models"
	"mindcaddy/pkg/utils"
)

func TestCreateAssessment_FreeMonthlyAllowance(t *testing.T) {
	t.Parallel()

	account := &db_models.Account{SubscriptionTier: db_models.TierFree, Role: db_models.RoleUser}
	accounts := newFakeAccountRepo(account)
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(repo, accounts)
	ctx := context.Background()

	req := request_models.CreateAssessmentRequest{Answers: json.RawMessage(`{"q1":3}`), Score: 60}

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateAssessment(ctx, account.ID, req); err != nil {
			t.Fatalf("assessment %d: %v", i+1, err)
		}
	}

	_, err := svc.CreateAssessment(ctx, account.ID, req)
	if !errors.Is(err, utils.ErrAssessmentLimit) {
		t.Fatalf("4th assessment err = %v, want ErrAssessmentLimit", err)
	}
	if len(repo.assessments) != 3 {
		t.Errorf("persisted %d assessments, want 3", len(repo.assessments))
	}
}

func TestCreateControlCircle_RoundTripsLists(t *testing.T) {
	t.Parallel()

	account := &db_models.Account{SubscriptionTier: db_models.TierFree}
	accounts := newFakeAccountRepo(account)
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(repo, accounts)
	ctx := context.Background()

	created, err := svc.CreateControlCircle(ctx, account.ID, request_models.CreateControlCircleRequest{
		InControl:    []string{"pre-shot routine", "breathing"},
		OutOfControl: []string{"wind", "pin placement"},
		Reflection:   "stay on my side of the circle",
	})
	if err != nil {
		t.Fatalf("CreateControlCircle: %v", err)
	}
	if len(created.InControl) != 2 || created.InControl[0] != "pre-shot routine" {
		t.Errorf("InControl = %v, want the submitted list", created.InControl)
	}

	listed, err := svc.ListControlCircles(ctx, account.ID)
	if err != nil {
		t.Fatalf("ListControlCircles: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d circles, want 1", len(listed))
	}
	if len(listed[0].OutOfControl) != 2 || listed[0].OutOfControl[1] != "pin placement" {
		t.Errorf("OutOfControl = %v, want the submitted list", listed[0].OutOfControl)
	}
}

func TestCreateAssessment_PremiumUnlimited(t *testing.T) {
	t.Parallel()

	account := &db_models.Account{SubscriptionTier: db_models.TierPremium, IsSubscribed: true}
	accounts := newFakeAccountRepo(account)
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(repo, accounts)
	ctx := context.Background()

	req := request_models.CreateAssessmentRequest{Answers: json.RawMessage(`{"q1":5}`), Score: 80}

	for i := 0; i < 10; i++ {
		if _, err := svc.CreateAssessment(ctx, account.ID, req); err != nil {
			t.Fatalf("assessment %d: %v", i+1, err)
		}
	}
	if len(repo.assessments) != 10 {
		t.Errorf("persisted %d assessments, want 10", len(repo.assessments))
	}
}
