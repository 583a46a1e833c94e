package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/server"
	"github.com/dmitrijs2005/fittrack/internal/server/config"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/repomanager"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

// Seams for tests.
var (
	openDB = func(ctx context.Context, c *config.Config) (*sql.DB, error) {
		return server.OpenDB(ctx, c)
	}
	gooseUp      = goose.UpContext
	gooseDown    = goose.DownContext
	gooseStatus  = goose.StatusContext
	gooseVersion = goose.GetDBVersionContext
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
			if err := gooseUp(ctx, db, "."); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			return printVersion(ctx, cmd, db)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
			if err := gooseDown(ctx, db, "."); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			return printVersion(ctx, cmd, db)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations have been applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
			return gooseStatus(ctx, db, ".")
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
			return printVersion(ctx, cmd, db)
		})
	},
}

func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := config.LoadConfig(nil)
	if err != nil {
		return err
	}
	if dsn != "" {
		c.DatabaseDSN = dsn
	}

	db, err := openDB(ctx, c)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := repomanager.SetupGoose(); err != nil {
		return err
	}
	return fn(ctx, db)
}

func printVersion(ctx context.Context, cmd *cobra.Command, db *sql.DB) error {
	v, err := gooseVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	cmd.Printf("schema version: %d\n", v)
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
