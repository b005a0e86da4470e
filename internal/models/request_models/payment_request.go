package request_models

type CreateCheckoutRequest struct {
	Tier string `json:"tier" binding:"required,oneof=premium ultimate"`
}

// CompleteSignupRequest is the signup-after-payment form: account fields plus
// the tier captured on the payment success page. Tier is optional so a user
// landing here directly still gets an account (at the free tier).
type CompleteSignupRequest struct {
	Tier        string `json:"tier" binding:"omitempty"`
	OrderCode   int64  `json:"order_code" binding:"omitempty"`
	DisplayName string `json:"display_name" binding:"required,min=3,max=50"`
	Username    string `json:"username" binding:"required,min=3,max=30"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}
