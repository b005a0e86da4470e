package db_models

type SubscriptionTier string

const (
	TierFree     SubscriptionTier = "free"
	TierPremium  SubscriptionTier = "premium"
	TierUltimate SubscriptionTier = "ultimate"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// tierRank orders tiers for "at least tier X" checks.
var tierRank = map[SubscriptionTier]int{
	TierFree:     0,
	TierPremium:  1,
	TierUltimate: 2,
}

// ValidTier reports whether s names a known tier.
func ValidTier(s string) bool {
	_, ok := tierRank[SubscriptionTier(s)]
	return ok
}

// Meets reports whether t grants at least the entitlement of min.
// Unknown tiers rank below free.
func (t SubscriptionTier) Meets(min SubscriptionTier) bool {
	tr, ok := tierRank[t]
	if !ok {
		tr = -1
	}
	return tr >= tierRank[min]
}

type Account struct {
	BaseModel
	Name         string
	Username     string `gorm:"uniqueIndex"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         string `gorm:"default:user"`

	// Entitlement snapshot. Tier != free implies IsSubscribed; the converse
	// does not hold for lifetime purchases that never expire.
	SubscriptionTier SubscriptionTier `gorm:"default:free;index"`
	IsSubscribed     bool             `gorm:"default:false"`

	ProviderCustomerID string `gorm:"index"`
	ProviderSubID      string `gorm:"index"`

	SubscriptionStartsAt *int64
	SubscriptionEndsAt   *int64

	Conversations []Conversation
	Assessments   []Assessment
	Goals         []Goal
}
