package middleware

import (
	"net/http"
	"strings"

	jwtsvc "dressup/internal/pkg/jwt"
	"dressup/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxUserID      = "user_id"
	CtxEmail       = "email"
	CtxIsAdmin     = "is_admin"
	CtxIsActive    = "is_active"
	CtxIsActivated = "is_activated"
)

// RequireAuth validates the bearer access token and stashes its claims in
// the gin context. Verification is signature + expiry only; no server-side
// state is consulted.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required!")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token!")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Subject)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Set(CtxIsActive, claims.IsActive)
		c.Set(CtxIsActivated, claims.IsActivated)

		c.Next()
	}
}

// OptionalAuth parses the bearer token when one is present but never
// rejects the request. Public endpoints use it to personalize responses
// for signed-in viewers.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			c.Next()
			return
		}

		if claims, err := jwt.ValidateToken(tokenStr); err == nil {
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Subject)
			c.Set(CtxIsAdmin, claims.IsAdmin)
			c.Set(CtxIsActive, claims.IsActive)
			c.Set(CtxIsActivated, claims.IsActivated)
		}

		c.Next()
	}
}

// UserID extracts the authenticated user's id set by RequireAuth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
