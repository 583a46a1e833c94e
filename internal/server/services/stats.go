package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/repomanager"
)

// StatsService serves read-only views of an account's activity. Every
// per-account query checks that the acting account is the one asked about.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *StatsService {
	return &StatsService{db: db, repomanager: m, logger: logger}
}

// Heatmap returns the per-day workout counts of accountID in ascending date
// order. No activity yields an empty, non-nil slice.
func (s *StatsService) Heatmap(ctx context.Context, actor, accountID string) ([]models.HeatmapPoint, error) {
	if err := checkOwner(actor, accountID); err != nil {
		return nil, err
	}
	points, err := s.repomanager.DailyActivity(s.db).ListByAccount(ctx, accountID)
	if err != nil {
		s.logger.Error(ctx, "heatmap query failed", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return points, nil
}

// TotalWorkouts returns how many sessions accountID has recorded.
func (s *StatsService) TotalWorkouts(ctx context.Context, actor, accountID string) (int64, error) {
	if err := checkOwner(actor, accountID); err != nil {
		return 0, err
	}
	n, err := s.repomanager.Workouts(s.db).CountByAccount(ctx, accountID)
	if err != nil {
		s.logger.Error(ctx, "workout count failed", "account_id", accountID, "error", err)
		return 0, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return n, nil
}

// Catalog lists the known exercise types ordered by name.
func (s *StatsService) Catalog(ctx context.Context) ([]models.ExerciseType, error) {
	types, err := s.repomanager.Exercises(s.db).ListTypes(ctx)
	if err != nil {
		s.logger.Error(ctx, "catalog query failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return types, nil
}

func checkOwner(actor, accountID string) error {
	if actor == "" || actor != accountID {
		return common.ErrForbidden
	}
	return nil
}
