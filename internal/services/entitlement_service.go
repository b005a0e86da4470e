package services

import (
	"context"

	"mindcaddy/internal/entitlement"
	"mindcaddy/internal/models/db_models"
	"mindcaddy/internal/repositories"
	"mindcaddy/pkg/utils"
)

type EntitlementServiceInterface interface {
	// ResolveViewer turns the optional authenticated user id into the gate's
	// viewer. An empty id is an anonymous viewer; a stale id (token for a
	// deleted account) also resolves to anonymous rather than erroring.
	ResolveViewer(ctx context.Context, userID string) (entitlement.Viewer, error)

	// DecideForUser resolves the viewer and applies the rule table.
	DecideForUser(ctx context.Context, userID string, feature entitlement.Feature) (entitlement.Decision, error)
}

type EntitlementService struct {
	accountRepo repositories.AccountRepository
}

func NewEntitlementService(accountRepo repositories.AccountRepository) EntitlementServiceInterface {
	return &EntitlementService{
		accountRepo: accountRepo,
	}
}

func (e *EntitlementService) ResolveViewer(ctx context.Context, userID string) (entitlement.Viewer, error) {
	if userID == "" {
		return entitlement.Anonymous(), nil
	}

	account, err := e.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return entitlement.Viewer{}, utils.ErrDatabaseError
	}
	if account == nil {
		return entitlement.Anonymous(), nil
	}

	return entitlement.SignedIn(account), nil
}

func (e *EntitlementService) DecideForUser(ctx context.Context, userID string, feature entitlement.Feature) (entitlement.Decision, error) {
	viewer, err := e.ResolveViewer(ctx, userID)
	if err != nil {
		return entitlement.Decision{}, err
	}
	return entitlement.Decide(viewer, feature), nil
}

// CreditBound reports whether a resolved viewer's chat usage is limited by
// credits. Paid tiers chat without a meter.
func CreditBound(v entitlement.Viewer) bool {
	if v.Account == nil {
		return true
	}
	return v.Account.SubscriptionTier == db_models.TierFree
}
