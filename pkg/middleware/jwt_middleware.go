package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mem "mindcaddy/pkg/memcache"
	"mindcaddy/pkg/utils"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// JWTAuthMiddleware rejects requests without a valid, non-revoked token and
// passes the caller's identity down the chain.
func JWTAuthMiddleware(denylist mem.TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		if denylist.IsRevoked(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, "Token has been logged out")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("Role", claims.Role)
		c.Set("token", tokenString)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a valid token is
// present and continues anonymously otherwise. Surfaces serving both guests
// and members (chat, entitlement checks) sit behind this.
func OptionalAuthMiddleware(denylist mem.TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" || denylist.IsRevoked(tokenString) {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("Role", claims.Role)
		c.Set("token", tokenString)
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("Role")

		if role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
