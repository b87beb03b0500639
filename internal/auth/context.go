package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID    = "user_id"
	CtxTokenID   = "token_id"
	CtxTokenExp  = "token_expires_at"
	CtxUserEmail = "email"
)

// SetUser stores the authenticated caller on the Gin context.
// This is called by middleware.BearerAuth.
func SetUser(c *gin.Context, userID int64, tokenID string, expiresAt time.Time) {
	c.Set(CtxUserID, userID)
	c.Set(CtxTokenID, tokenID)
	c.Set(CtxTokenExp, expiresAt)
}

// UserID returns the authenticated user id, or 0 when the request is anonymous.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

// TokenID returns the jti of the bearer token used for the request.
func TokenID(c *gin.Context) string {
	return c.GetString(CtxTokenID)
}

// TokenExpiresAt returns the expiry of the bearer token used for the request.
func TokenExpiresAt(c *gin.Context) time.Time {
	return c.GetTime(CtxTokenExp)
}
