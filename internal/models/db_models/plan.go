package db_models

import (
	"gorm.io/datatypes"
)

type BillingPeriod string

const (
	PeriodMonth BillingPeriod = "month"
	PeriodYear  BillingPeriod = "year"
)

// Plan is the purchasable shape of a tier. Code matches the tier name so the
// payment return URL can carry a single identifier.
type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"` // "free", "premium", "ultimate"
	Name        string
	Description *string
	Period      BillingPeriod `gorm:"default:month"`
	PriceMinor  int64         // 1999 = $19.99
	Currency    string        `gorm:"size:3"`
	TrialDays   int32         `gorm:"default:0"`
	IsActive    bool          `gorm:"default:true"`
	// Feature flags surfaced on the pricing page.
	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

// Tier returns the entitlement tier this plan grants.
func (p Plan) Tier() SubscriptionTier {
	if ValidTier(p.Code) {
		return SubscriptionTier(p.Code)
	}
	return TierFree
}
