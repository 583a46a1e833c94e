// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/migrations"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/dailyactivity"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/exercises"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/workouts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

// Workouts returns a workouts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Workouts(db dbx.DBTX) workouts.Repository {
	return workouts.NewPostgresRepository(db)
}

// Exercises returns an exercises.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Exercises(db dbx.DBTX) exercises.Repository {
	return exercises.NewPostgresRepository(db)
}

// DailyActivity returns a dailyactivity.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) DailyActivity(db dbx.DBTX) dailyactivity.Repository {
	return dailyactivity.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// SetupGoose points goose at the embedded migrations and the pgx dialect.
func SetupGoose() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect("pgx")
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := SetupGoose(); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
