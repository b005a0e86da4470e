package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusCanceled SubscriptionStatus = "canceled"
	SubStatusExpired  SubscriptionStatus = "expired"
)

type Subscription struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`
	PlanID    uuid.UUID `gorm:"index"`

	Status     SubscriptionStatus `gorm:"index"`
	StartsAt   int64              `gorm:"not null"`
	EndsAt     int64              `gorm:"not null"`
	CanceledAt *int64
	AutoRenew  bool `gorm:"default:true"`

	Provider           string `gorm:"index"`
	ProviderCustomerID string `gorm:"index"`
	ProviderSubID      string `gorm:"uniqueIndex"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account `gorm:"foreignKey:AccountID"`
	Plan    Plan    `gorm:"foreignKey:PlanID"`
}
