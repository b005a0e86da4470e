package response_models

type CreateCheckoutResponse struct {
	OrderCode    int64  `json:"order_code"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	PaymentURL   string `json:"payment_url"`
	Tier         string `json:"tier"`
	ProviderName string `json:"provider_name"`
}

// SuccessCaptureResponse is what the post-payment success page renders: the
// captured tier and the matching plan summary to pre-fill the signup form.
type SuccessCaptureResponse struct {
	Tier string            `json:"tier"`
	Plan *SubscriptionPlan `json:"plan,omitempty"`
}
