package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the login route. Extra handlers run before it,
// such as a rate limiter.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup, before ...gin.HandlerFunc) {
	rg.POST("/login", append(before, h.Login)...)
}

// RegisterProtected attaches routes that need a bearer token.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
	rg.GET("/user", h.CurrentUser)
}
