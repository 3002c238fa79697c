package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/constants"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
)

// RequireAuth checks the bearer token on protected routes and stores the
// verified claim's user ID and email in the request context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			apierrors.Unauthorized(c, "No token provided, please login")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				apierrors.Unauthorized(c, "Token has expired, please login again")
			case errors.Is(err, auth.ErrMissingSecret):
				apierrors.InternalError(c, "JWT secret is not configured on the server")
			default:
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
