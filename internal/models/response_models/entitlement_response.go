package response_models

type AccessDecisionResponse struct {
	Feature string `json:"feature"`
	Verdict string `json:"verdict"` // allow | deny_sign_in | deny_upgrade | pending
	MinTier string `json:"min_tier,omitempty"`
}
