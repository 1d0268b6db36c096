package middleware

import (
	"errors"
	"net/http"
	"strings"

	"pawplan-backend/internal/repository"
	"pawplan-backend/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID  = "user_id"
	CtxIsAdmin = "is_admin"
)

// Auth creates a Gin middleware that validates the bearer token and resolves
// the caller's identity and role. The role comes from the user row, not the
// token, so demoting an admin takes effect on their next request.
func Auth(tokens *token.Service, users repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		userID, err := tokens.Validate(parts[1])
		if err != nil {
			// Expired, malformed and bad-signature all collapse to 401 for the
			// caller; the log keeps them apart.
			if errors.Is(err, token.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				c.Abort()
				return
			}
			logger.Warn("Invalid bearer token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil {
			logger.Error("Failed to resolve token user", zap.Int64("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			c.Abort()
			return
		}
		if user == nil {
			// Token outlived its account.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxIsAdmin, user.IsAdmin)

		c.Next()
	}
}

// AdminRequired rejects non-admin callers. Must run after Auth.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.MustGet(CtxIsAdmin).(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
