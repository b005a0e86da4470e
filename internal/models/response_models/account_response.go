package response_models

type AccountLoginResponse struct {
	Token            string `json:"token"`
	SubscriptionTier string `json:"subscription_tier"`
	IsSubscribed     bool   `json:"is_subscribed"`
}

type AccountResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	SubscriptionTier   string `json:"subscription_tier"`
	IsSubscribed       bool   `json:"is_subscribed"`
	SubscriptionEndsAt *int64 `json:"subscription_ends_at,omitempty"`
	CreatedAt          int64  `json:"created_at"`
}
