package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"mindcaddy/internal/entitlement"
	"mindcaddy/internal/models/db_models"
)

func TestResolveViewer(t *testing.T) {
	t.Parallel()

	account := &db_models.Account{SubscriptionTier: db_models.TierPremium}
	accounts := newFakeAccountRepo(account)
	svc := NewEntitlementService(accounts)
	ctx := context.Background()

	anon, err := svc.ResolveViewer(ctx, "")
	if err != nil {
		t.Fatalf("anonymous: %v", err)
	}
	if !anon.Resolved || anon.Account != nil {
		t.Error("empty id should resolve to anonymous")
	}

	// A token naming a deleted account resolves to anonymous, not an error.
	stale, err := svc.ResolveViewer(ctx, uuid.New().String())
	if err != nil {
		t.Fatalf("stale id: %v", err)
	}
	if !stale.Resolved || stale.Account != nil {
		t.Error("stale id should resolve to anonymous")
	}

	member, err := svc.ResolveViewer(ctx, account.ID.String())
	if err != nil {
		t.Fatalf("member: %v", err)
	}
	if member.Account == nil || member.Account.SubscriptionTier != db_models.TierPremium {
		t.Error("known id should resolve to the account")
	}
}

func TestDecideForUser(t *testing.T) {
	t.Parallel()

	account := &db_models.Account{SubscriptionTier: db_models.TierFree, Role: db_models.RoleUser}
	accounts := newFakeAccountRepo(account)
	svc := NewEntitlementService(accounts)
	ctx := context.Background()

	d, err := svc.DecideForUser(ctx, "", entitlement.FeatureGoals)
	if err != nil {
		t.Fatalf("anonymous: %v", err)
	}
	if d.Verdict != entitlement.VerdictDenySignIn {
		t.Errorf("anonymous goals = %s, want deny_sign_in", d.Verdict)
	}

	d, err = svc.DecideForUser(ctx, account.ID.String(), entitlement.FeatureGoals)
	if err != nil {
		t.Fatalf("free member: %v", err)
	}
	if d.Verdict != entitlement.VerdictDenyUpgrade || d.MinTier != db_models.TierPremium {
		t.Errorf("free goals = %s/%s, want deny_upgrade/premium", d.Verdict, d.MinTier)
	}
}

func TestCreditBound(t *testing.T) {
	t.Parallel()

	if !CreditBound(entitlement.Anonymous()) {
		t.Error("guests are credit bound")
	}
	if !CreditBound(entitlement.SignedIn(&db_models.Account{SubscriptionTier: db_models.TierFree})) {
		t.Error("free members are credit bound")
	}
	if CreditBound(entitlement.SignedIn(&db_models.Account{SubscriptionTier: db_models.TierPremium})) {
		t.Error("premium members are not credit bound")
	}
	if CreditBound(entitlement.SignedIn(&db_models.Account{SubscriptionTier: db_models.TierUltimate})) {
		t.Error("ultimate members are not credit bound")
	}
}
