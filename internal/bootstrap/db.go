package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/config"
	"github.com/GoSim-25-26J-441/project-tracker/internal/storage/postgres"
)

type DBOptions struct {
	Config      *config.DatabaseConfig
	ConnectTO   time.Duration
	MigrateTO   time.Duration
	AutoMigrate bool
	Logger      *zap.Logger
}

// OpenDB connects to PostgreSQL and applies the schema when AutoMigrate is set.
func OpenDB(ctx context.Context, opt DBOptions) (*sql.DB, error) {
	if opt.Config == nil {
		return nil, fmt.Errorf("database config is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.MigrateTO == 0 {
		opt.MigrateTO = 30 * time.Second
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	db, err := postgres.NewConnection(cctx, opt.Config)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	opt.Logger.Info("database connected", zap.String("driver", opt.Config.Driver))

	if opt.AutoMigrate {
		mctx, mcancel := context.WithTimeout(ctx, opt.MigrateTO)
		defer mcancel()

		if err := postgres.Migrate(mctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}
		opt.Logger.Info("database schema applied")
	}

	return db, nil
}
