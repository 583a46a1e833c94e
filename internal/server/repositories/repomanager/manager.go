package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/dailyactivity"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/exercises"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/workouts"
)

// RepositoryManager vends repositories bound to a DBTX, so that services can
// run the same repositories against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Workouts(db dbx.DBTX) workouts.Repository
	Exercises(db dbx.DBTX) exercises.Repository
	DailyActivity(db dbx.DBTX) dailyactivity.Repository
}
