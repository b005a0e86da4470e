package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindcaddy/pkg/utils"
)

// currentAccountID returns the authenticated account id, or nil when the
// request came in anonymously (optional-auth routes).
func currentAccountID(c *gin.Context) *uuid.UUID {
	raw := c.GetString("user_id")
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// mustAccountID is for routes behind JWTAuthMiddleware. It writes the 401
// itself so handlers can return on the false branch.
func mustAccountID(c *gin.Context) (uuid.UUID, bool) {
	id := currentAccountID(c)
	if id == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.UUID{}, false
	}
	return *id, true
}

func guestSessionID(c *gin.Context) string {
	return c.GetString("guest_session")
}
