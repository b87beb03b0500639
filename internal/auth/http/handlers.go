package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/validation"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/logging"
)

// Login exchanges email and password for a bearer token
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := h.validate.Bind(c, &req); err != nil {
		validation.Respond(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		h.serverError(c, "login failed", err)
		return
	}

	h.log.Info("user logged in", append(logging.ContextFields(c.Request.Context()), zap.Int64("user_id", session.User.ID))...)
	c.JSON(http.StatusOK, session)
}

// Logout revokes the bearer token used for this request
func (h *Handler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), auth.TokenID(c), auth.TokenExpiresAt(c)); err != nil {
		h.serverError(c, "logout failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// CurrentUser returns the authenticated user's profile
func (h *Handler) CurrentUser(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// token outlived its account
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}
		h.serverError(c, "load user failed", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	h.log.Error(msg, append(logging.ContextFields(c.Request.Context()), zap.Error(err))...)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
}
