package utils

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrUnknownTier          = errors.New("unknown subscription tier")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrOutOfCredits         = errors.New("free message credits exhausted")
	ErrAssessmentLimit      = errors.New("free tier assessment limit reached")
	ErrFeatureLocked        = errors.New("feature requires a higher tier")
	ErrSignInRequired       = errors.New("sign in required")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyCompletion      = errors.New("provider returned an empty completion")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrDatabaseError        = errors.New("database error")
	RecordNotFound          = errors.New("record not found")
)
