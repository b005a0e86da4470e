// Package entitlement holds the tier-gate rule table: pure functions that
// decide, for a viewer and a feature, whether to allow the action, ask for
// sign-in, or ask for an upgrade. It never errors and has no side effects;
// callers render the matching prompt and skip the gated call when denied.
package entitlement

import (
	"mindcaddy/internal/models/db_models"
)

type Feature string

const (
	FeatureAIChat               Feature = "ai-chat"
	FeatureHumanCoaching        Feature = "human-coaching"
	FeatureScenarios            Feature = "scenarios"
	FeatureCommunity            Feature = "community"
	FeatureGoals                Feature = "goals"
	FeatureUnlimitedAssessments Feature = "unlimited-assessments"
	FeatureAdminPanel           Feature = "admin-panel"
)

// Features lists every known feature tag.
var Features = []Feature{
	FeatureAIChat,
	FeatureHumanCoaching,
	FeatureScenarios,
	FeatureCommunity,
	FeatureGoals,
	FeatureUnlimitedAssessments,
	FeatureAdminPanel,
}

// ValidFeature reports whether s names a known feature tag.
func ValidFeature(s string) bool {
	for _, f := range Features {
		if string(f) == s {
			return true
		}
	}
	return false
}

type Verdict string

const (
	VerdictAllow       Verdict = "allow"
	VerdictDenySignIn  Verdict = "deny_sign_in"
	VerdictDenyUpgrade Verdict = "deny_upgrade"
	VerdictPending     Verdict = "pending"
)

type Decision struct {
	Verdict Verdict
	// MinTier is set when Verdict is VerdictDenyUpgrade: the lowest tier that
	// would unlock the feature.
	MinTier db_models.SubscriptionTier
}

func Allow() Decision      { return Decision{Verdict: VerdictAllow} }
func DenySignIn() Decision { return Decision{Verdict: VerdictDenySignIn} }
func Pending() Decision    { return Decision{Verdict: VerdictPending} }
func DenyUpgrade(min db_models.SubscriptionTier) Decision {
	return Decision{Verdict: VerdictDenyUpgrade, MinTier: min}
}

// Viewer is the gate's view of the requester. Resolved=false means the auth
// lookup has not finished yet; a nil Account with Resolved=true means
// anonymous.
type Viewer struct {
	Resolved bool
	Account  *db_models.Account
}

func Anonymous() Viewer                    { return Viewer{Resolved: true} }
func SignedIn(a *db_models.Account) Viewer { return Viewer{Resolved: true, Account: a} }

// minTierFor maps each tier-gated feature to the lowest tier that unlocks it.
// ai-chat is absent on purpose: every tier may chat, the free tiers are
// bounded by credits, which the usage counter owns, not the gate.
var minTierFor = map[Feature]db_models.SubscriptionTier{
	FeatureHumanCoaching:        db_models.TierUltimate,
	FeatureScenarios:            db_models.TierPremium,
	FeatureCommunity:            db_models.TierPremium,
	FeatureGoals:                db_models.TierPremium,
	FeatureUnlimitedAssessments: db_models.TierPremium,
}

// Decide applies the rule table. An indeterminate viewer maps to Pending so
// callers can hold rendering instead of flashing a denial.
func Decide(v Viewer, f Feature) Decision {
	if !v.Resolved {
		return Pending()
	}

	if f == FeatureAdminPanel {
		if v.Account == nil {
			return DenySignIn()
		}
		if v.Account.Role != db_models.RoleAdmin {
			// No tier unlocks the admin panel; ultimate is the ceiling we can
			// point an upgrade prompt at, and the role check still denies.
			return DenyUpgrade(db_models.TierUltimate)
		}
		return Allow()
	}

	if f == FeatureAIChat {
		// Quantity for free viewers is the credit store's concern.
		return Allow()
	}

	min, known := minTierFor[f]
	if !known {
		// Unknown tags fail closed behind the highest tier.
		min = db_models.TierUltimate
	}

	if v.Account == nil {
		return DenySignIn()
	}
	if !v.Account.SubscriptionTier.Meets(min) {
		return DenyUpgrade(min)
	}
	return Allow()
}
