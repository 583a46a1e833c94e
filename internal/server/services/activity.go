package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/observability"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fittrack/internal/timex"
	"github.com/google/uuid"
)

// RecordInput is one workout as submitted by an authenticated account.
// A zero StartTime means "now"; a zero Date means the UTC day of StartTime.
type RecordInput struct {
	AccountID       string
	Date            time.Time
	StartTime       time.Time
	DurationMinutes int
	Exercises       []models.ExerciseInput
}

// ActivityService records workouts. The session row, its exercise records and
// the daily aggregate are written in a single transaction.
type ActivityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
	newID       func() string
}

// NewActivityService constructs an ActivityService.
func NewActivityService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ActivityService {
	return &ActivityService{
		db:          db,
		repomanager: m,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Record stores a workout session, one exercise record per exercise whose
// name is in the catalog, and bumps the account's daily aggregate.
//
// Exercises with unknown names are not stored; they are returned in
// RecordResult.Skipped and the call still succeeds. Any storage failure rolls
// everything back and yields an error matching common.ErrorInternal.
func (s *ActivityService) Record(ctx context.Context, in RecordInput) (*models.RecordResult, error) {
	if err := validateRecord(in); err != nil {
		return nil, err
	}

	start := in.StartTime
	if start.IsZero() {
		start = s.now()
	}
	day := in.Date
	if day.IsZero() {
		day = start
	}

	session := &models.WorkoutSession{
		ID:              s.newID(),
		AccountID:       in.AccountID,
		Date:            timex.UTCDate(day),
		StartTime:       start.UTC(),
		DurationMinutes: in.DurationMinutes,
	}
	result := &models.RecordResult{SessionID: session.ID, Skipped: []string{}}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Workouts(tx).Create(ctx, session); err != nil {
			return fmt.Errorf("error creating workout session: %w", err)
		}

		exercises := s.repomanager.Exercises(tx)
		for _, ex := range in.Exercises {
			ok, err := exercises.AddRecord(ctx, session.ID, ex)
			if err != nil {
				return fmt.Errorf("error adding exercise %q: %w", ex.Name, err)
			}
			if !ok {
				result.Skipped = append(result.Skipped, ex.Name)
				continue
			}
			result.Recorded++
		}

		if _, err := s.repomanager.DailyActivity(tx).Increment(ctx, session.AccountID, session.Date, session.DurationMinutes); err != nil {
			return fmt.Errorf("error updating daily activity: %w", err)
		}
		return nil
	})
	if err != nil {
		observability.RecordWorkoutFailure()
		s.logger.Error(ctx, "workout not recorded", "account_id", in.AccountID, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	observability.RecordWorkout(result.Recorded, len(result.Skipped))
	if result.Partial() {
		s.logger.Warn(ctx, "exercise names not found in catalog",
			"account_id", in.AccountID, "session_id", session.ID, "skipped", result.Skipped)
	}
	s.logger.Debug(ctx, "workout recorded", "account_id", in.AccountID, "session_id", session.ID,
		"recorded", result.Recorded)

	return result, nil
}

// maxWorkoutMinutes bounds one session to a day.
const maxWorkoutMinutes = 24 * 60

func validateRecord(in RecordInput) error {
	if in.AccountID == "" {
		return fmt.Errorf("%w: account id is required", common.ErrorValidation)
	}
	if in.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", common.ErrorValidation)
	}
	if in.DurationMinutes > maxWorkoutMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", common.ErrorValidation, maxWorkoutMinutes)
	}
	for i, ex := range in.Exercises {
		if ex.Name == "" {
			return fmt.Errorf("%w: exercise %d has no name", common.ErrorValidation, i)
		}
		if ex.Sets < 0 || ex.Reps < 0 || ex.DurationSeconds < 0 {
			return fmt.Errorf("%w: exercise %q has negative values", common.ErrorValidation, ex.Name)
		}
		if ex.Sets > math.MaxInt32 || ex.Reps > math.MaxInt32 || ex.DurationSeconds > math.MaxInt32 {
			return fmt.Errorf("%w: exercise %q has values out of range", common.ErrorValidation, ex.Name)
		}
	}
	return nil
}
