package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors onto the response envelope.
// Entitlement denials resolve to prompts (sign-in, upgrade), never raw errors.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, RecordNotFound),
		errors.Is(err, ErrPlanNotFound), errors.Is(err, ErrConversationNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrSignInRequired):
		RespondError(c, http.StatusUnauthorized, "Sign in to continue")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusConflict, "This username is already taken")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Invalid or expired reset code")
	case errors.Is(err, ErrEmptyMessage):
		RespondError(c, http.StatusBadRequest, "Message cannot be empty")
	case errors.Is(err, ErrUnknownTier):
		RespondError(c, http.StatusBadRequest, "Unknown subscription tier")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrOutOfCredits):
		RespondError(c, http.StatusPaymentRequired, "Free messages used up. Upgrade to keep chatting with your coach")
	case errors.Is(err, ErrAssessmentLimit):
		RespondError(c, http.StatusPaymentRequired, "Free assessments used up this month. Upgrade for unlimited assessments")
	case errors.Is(err, ErrFeatureLocked):
		RespondError(c, http.StatusForbidden, "This feature requires a higher tier")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
