package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const GuestSessionHeader = "X-Guest-Session"

// GuestSessionMiddleware gives anonymous visitors a stable session id so
// free-chat credits can be enforced server-side instead of in page state.
// The client echoes the header back on subsequent requests; a missing or
// malformed id gets a fresh one (and with it a fresh credit ceiling, bounded
// by the store's TTL).
func GuestSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(GuestSessionHeader)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.New().String()
		}
		c.Set("guest_session", sessionID)
		c.Writer.Header().Set(GuestSessionHeader, sessionID)
		c.Next()
	}
}
