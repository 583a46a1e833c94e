// Package exercises resolves exercise names against the catalog and stores
// per-session exercise records.
package exercises

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

// AddRecord resolves in.Name by exact match and inserts one record for the
// session in the same statement. It reports false when the name is not in
// the catalog; that is not an error.
func (r *PostgresRepository) AddRecord(ctx context.Context, sessionID string, in models.ExerciseInput) (bool, error) {

	query :=
		`INSERT INTO exercise_records (session_id, exercise_type_id, sets, reps, duration_seconds)
         SELECT $1, id, $2, $3, $4
		 FROM exercise_types WHERE name = $5
		 `

	res, err := r.db.ExecContext(ctx, query, sessionID, in.Sets, in.Reps, in.DurationSeconds, in.Name)
	if err != nil {
		return false, dbx.Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, dbx.Wrap(err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) ListTypes(ctx context.Context) ([]models.ExerciseType, error) {
	query := `SELECT id, name, category FROM exercise_types ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	defer rows.Close()

	types := make([]models.ExerciseType, 0)
	for rows.Next() {
		var t models.ExerciseType
		if err := rows.Scan(&t.ID, &t.Name, &t.Category); err != nil {
			return nil, dbx.Wrap(err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap(err)
	}

	return types, nil
}
