package workouts

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, session *models.WorkoutSession) error
	CountByAccount(ctx context.Context, accountID string) (int64, error)
}
