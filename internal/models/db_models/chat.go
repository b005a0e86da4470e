package db_models

import (
	"github.com/google/uuid"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Conversation is owned by a signed-in account or, for the landing-page chat,
// by an anonymous guest session. Exactly one of the two keys is set.
type Conversation struct {
	BaseModel
	AccountID      *uuid.UUID `gorm:"index"`
	GuestSessionID string     `gorm:"index"`
	Title          string

	Messages []ChatMessage `gorm:"foreignKey:ConversationID"`
}

// OwnedBy reports whether the conversation belongs to the given account or
// guest session.
func (c Conversation) OwnedBy(accountID *uuid.UUID, guestSessionID string) bool {
	if c.AccountID != nil {
		return accountID != nil && *c.AccountID == *accountID
	}
	return c.GuestSessionID != "" && c.GuestSessionID == guestSessionID
}

type ChatMessage struct {
	BaseModel
	ConversationID uuid.UUID `gorm:"index"`
	Role           string    // ChatRoleUser | ChatRoleAssistant
	Content        string
}
