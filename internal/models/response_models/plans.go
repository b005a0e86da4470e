package response_models

type SubscriptionPlan struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"`
	Currency    string  `json:"currency"`
	Period      string  `json:"period"`
	TrialDays   int32   `json:"trial_days"`
	IsActive    bool    `json:"is_active"`
}
