// Package workouts persists WorkoutSession rows.
package workouts

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.WorkoutSession) error {

	query :=
		`INSERT INTO workout_sessions (id, account_id, workout_date, start_time, duration_minutes)
         VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, s.ID, s.AccountID, s.Date, s.StartTime, s.DurationMinutes)
	if err != nil {
		return dbx.Wrap(err)
	}

	return nil
}

func (r *PostgresRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	query :=
		`SELECT COUNT(*) FROM workout_sessions
		 WHERE account_id = $1
		 `

	var n int64
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&n); err != nil {
		return 0, dbx.Wrap(err)
	}

	return n, nil
}
