package response_models

type ChatReplyResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
	// RemainingCredits is present only for credit-bound (free) viewers.
	RemainingCredits *int `json:"remaining_credits,omitempty"`
}

type ChatMessageResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type ChatHistoryResponse struct {
	ConversationID string                `json:"conversation_id"`
	Messages       []ChatMessageResponse `json:"messages"`
}

type ChatCreditsResponse struct {
	Remaining int  `json:"remaining"`
	Ceiling   int  `json:"ceiling"`
	Unlimited bool `json:"unlimited"`
}
