package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

type IChatRepository interface {
	CreateConversation(ctx context.Context, conv *db_models.Conversation) error
	FindConversation(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error)
	AppendMessages(ctx context.Context, messages []db_models.ChatMessage) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]db_models.ChatMessage, error)
}

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) IChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateConversation(ctx context.Context, conv *db_models.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *ChatRepository) FindConversation(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error) {
	var conv db_models.Conversation
	err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &conv, nil
}

// AppendMessages writes both turns of an exchange in one transaction so a
// user message is never persisted without its reply.
func (r *ChatRepository) AppendMessages(ctx context.Context, messages []db_models.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&messages).Error
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]db_models.ChatMessage, error) {
	var messages []db_models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	return messages, nil
}
