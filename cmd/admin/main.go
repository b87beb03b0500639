// Command admin runs maintenance tasks against the project tracker database.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/project-tracker/config"
	"github.com/GoSim-25-26J-441/project-tracker/internal/storage/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(openDB).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// dbOpener is replaced in tests.
type dbOpener func(ctx context.Context) (*sql.DB, error)

func openDB(ctx context.Context) (*sql.DB, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	return postgres.NewConnection(ctx, cfg)
}

func newRootCmd(open dbOpener) *cobra.Command {
	root := &cobra.Command{
		Use:   "admin",
		Short: "Maintenance commands for the project tracker database",
		Long: `admin applies the database schema and seeds user accounts.

Connection settings are read from the environment (DB_DSN or DB_HOST,
DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE, DB_DRIVER) and an
optional .env file in the working directory.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(open))
	root.AddCommand(newCreateUserCmd(open))
	return root
}

func newMigrateCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Apply the embedded schema. Statements are idempotent, so running
migrate against an up to date database is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}
