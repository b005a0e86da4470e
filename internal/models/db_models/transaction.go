package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending  TransactionStatus = "pending"
	TxnStatusPaid     TransactionStatus = "paid"
	TxnStatusFailed   TransactionStatus = "failed"
	TxnStatusRefunded TransactionStatus = "refunded"
)

type Transaction struct {
	BaseModel
	AccountID      *uuid.UUID        `gorm:"index"` // nullable: checkout can start before signup
	SubscriptionID *uuid.UUID        `gorm:"index"`
	AmountMinor    int64             // 1999 = $19.99
	Currency       string            `gorm:"size:3"`
	Status         TransactionStatus `gorm:"index"`

	// Gateway fields
	Provider         string `gorm:"index"`
	ProviderTxnID    string `gorm:"uniqueIndex"` // idempotency across webhooks
	PaymentMethodRef string

	// Unix seconds
	AuthorizedAt *int64
	PaidAt       *int64
	RefundedAt   *int64

	// Webhook payloads, failure reasons, captured plan code.
	Receipt  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Subscription *Subscription `gorm:"foreignKey:SubscriptionID"`
}
