package http

import (
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/validation"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/service"
)

type Handler struct {
	authService *service.AuthService
	validate    *validation.Validator
	log         *zap.Logger
}

func New(authService *service.AuthService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		authService: authService,
		validate:    validation.New(),
		log:         log,
	}
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
