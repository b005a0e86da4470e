package request_models

type ChatSendRequest struct {
	// ConversationID is empty for the first message of a conversation.
	ConversationID string `json:"conversation_id" binding:"omitempty,uuid4"`
	Message        string `json:"message" binding:"required"`
}
