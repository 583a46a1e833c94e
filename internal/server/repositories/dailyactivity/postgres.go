// Package dailyactivity maintains the per-account, per-day workout aggregate.
package dailyactivity

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Increment adds one workout of durationMinutes to the (accountID, date) row,
// creating it when absent. It is a single INSERT .. ON CONFLICT statement, so
// concurrent increments for the same day never lose updates.
func (r *PostgresRepository) Increment(ctx context.Context, accountID string, date time.Time, durationMinutes int) (*models.DailyActivity, error) {

	query :=
		`INSERT INTO daily_activity (account_id, activity_date, workout_count, total_duration_minutes)
         VALUES ($1, $2, 1, $3)
		 ON CONFLICT (account_id, activity_date) DO UPDATE
		 SET workout_count = daily_activity.workout_count + 1,
		     total_duration_minutes = daily_activity.total_duration_minutes + EXCLUDED.total_duration_minutes
		 RETURNING workout_count, total_duration_minutes
		 `

	a := &models.DailyActivity{AccountID: accountID, Date: date}
	err := r.db.QueryRowContext(ctx, query, accountID, date, durationMinutes).
		Scan(&a.WorkoutCount, &a.TotalDurationMinutes)
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	return a, nil
}

// ListByAccount returns the heatmap series in ascending date order. An
// account without activity yields an empty, non-nil slice.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]models.HeatmapPoint, error) {
	query :=
		`SELECT activity_date, workout_count FROM daily_activity
		 WHERE account_id = $1
		 ORDER BY activity_date
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	defer rows.Close()

	points := make([]models.HeatmapPoint, 0)
	for rows.Next() {
		var p models.HeatmapPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, dbx.Wrap(err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap(err)
	}

	return points, nil
}
