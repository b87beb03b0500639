// Command api serves the project tracker REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/config"
	authrepo "github.com/GoSim-25-26J-441/project-tracker/internal/auth/repository"
	authservice "github.com/GoSim-25-26J-441/project-tracker/internal/auth/service"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/token"
	"github.com/GoSim-25-26J-441/project-tracker/internal/bootstrap"
	"github.com/GoSim-25-26J-441/project-tracker/internal/logging"
	projectrepo "github.com/GoSim-25-26J-441/project-tracker/internal/projects/repository"
)

const serviceName = "project-tracker"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		Config:      &cfg.Database,
		AutoMigrate: cfg.Database.AutoMigrate,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	var (
		rdb     *redis.Client
		revoked authrepo.RevocationStore
	)
	if cfg.Redis.URL != "" {
		rdb, err = bootstrap.OpenRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoked = authrepo.NewRedisRevocationStore(rdb)
		logger.Info("redis connected")
	} else {
		revoked = authrepo.NewMemoryRevocationStore()
		logger.Warn("REDIS_URL not set, token revocations are kept in memory")
	}

	authSvc := authservice.NewAuthService(
		authrepo.NewUserRepository(db),
		token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		revoked,
	)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:        serviceName,
		Version:            cfg.App.Version,
		Logger:             logger,
		Projects:           projectrepo.NewProjectRepository(db),
		Auth:               authSvc,
		DB:                 db,
		Redis:              rdb,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
