package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/project-tracker/internal/api/http"
	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/routes"
	authservice "github.com/GoSim-25-26J-441/project-tracker/internal/auth/service"
	projectservice "github.com/GoSim-25-26J-441/project-tracker/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger

	Projects projectservice.Store
	Auth     *authservice.AuthService

	// DB and Redis are only used for health reporting and may be nil.
	DB    httpapi.Pinger
	Redis *redis.Client

	CORSAllowedOrigins []string
	LoginRatePerMinute int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Logger == nil {
		dep.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		dep.Logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	}))
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(dep.CORSAllowedOrigins)))

	var redisPinger httpapi.Pinger
	if dep.Redis != nil {
		redisPinger = httpapi.PingerFunc(func(ctx context.Context) error {
			return dep.Redis.Ping(ctx).Err()
		})
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, redisPinger)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterAPI(r, routes.APIDeps{
		Projects:           projectservice.NewProjectService(dep.Projects),
		Auth:               dep.Auth,
		Logger:             dep.Logger,
		LoginRatePerMinute: dep.LoginRatePerMinute,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
