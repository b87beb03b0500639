package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/token"
	"github.com/GoSim-25-26J-441/project-tracker/internal/logging"
)

// Authenticator verifies raw bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*token.Claims, error)
}

// BearerAuth validates the Authorization header and stores the caller on the context
func BearerAuth(authn Authenticator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			unauthenticated(c)
			return
		}

		claims, err := authn.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, domain.ErrTokenInvalid) || errors.Is(err, domain.ErrTokenRevoked) {
				unauthenticated(c)
				return
			}
			log.Error("token check failed", append(logging.ContextFields(c.Request.Context()), zap.Error(err))...)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}

		auth.SetUser(c, claims.UserID, claims.TokenID, claims.ExpiresAt)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
