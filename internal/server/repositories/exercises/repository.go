package exercises

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type Repository interface {
	AddRecord(ctx context.Context, sessionID string, in models.ExerciseInput) (bool, error)
	ListTypes(ctx context.Context) ([]models.ExerciseType, error)
}
