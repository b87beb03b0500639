package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/middleware"
	authhttp "github.com/GoSim-25-26J-441/project-tracker/internal/auth/http"
	authmw "github.com/GoSim-25-26J-441/project-tracker/internal/auth/middleware"
	authservice "github.com/GoSim-25-26J-441/project-tracker/internal/auth/service"
	projecthttp "github.com/GoSim-25-26J-441/project-tracker/internal/projects/http"
	projectservice "github.com/GoSim-25-26J-441/project-tracker/internal/projects/service"
)

type APIDeps struct {
	Projects           *projectservice.ProjectService
	Auth               *authservice.AuthService
	Logger             *zap.Logger
	LoginRatePerMinute int
}

// RegisterAPI mounts the JSON API under /api.
func RegisterAPI(r *gin.Engine, dep APIDeps) {
	api := r.Group("/api")

	authHandler := authhttp.New(dep.Auth, dep.Logger)
	if dep.LoginRatePerMinute > 0 {
		authHandler.RegisterPublic(api, middleware.NewRateLimiter(dep.LoginRatePerMinute).Middleware())
	} else {
		authHandler.RegisterPublic(api)
	}

	protected := api.Group("")
	protected.Use(authmw.BearerAuth(dep.Auth, dep.Logger))
	authHandler.RegisterProtected(protected)

	projectHandler := projecthttp.New(dep.Projects, dep.Logger)
	projectHandler.Register(protected.Group("/projects"))
}
