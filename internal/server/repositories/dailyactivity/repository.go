package dailyactivity

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type Repository interface {
	Increment(ctx context.Context, accountID string, date time.Time, durationMinutes int) (*models.DailyActivity, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.HeatmapPoint, error)
}
