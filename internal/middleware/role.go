package middleware

import (
	"net/http"

	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminOnly requires the is_admin claim set by RequireAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(CtxIsAdmin)
		if !exists {
			response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required!")
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			response.Error(c, http.StatusForbidden, "AUTHORIZATION_FAILED", "Authorization failed. User has no access.")
			c.Abort()
			return
		}

		c.Next()
	}
}
