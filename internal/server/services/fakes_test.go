package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/dailyactivity"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/exercises"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/workouts"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeAccountsRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*models.Account
	createErr error
	getErr    error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{byEmail: map[string]*models.Account{}}
}

func (f *fakeAccountsRepo) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	cp := *a
	cp.CreatedAt = time.Now()
	f.byEmail[a.Email] = &cp
	return &cp, nil
}

func (f *fakeAccountsRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

type fakeWorkoutsRepo struct {
	created   []*models.WorkoutSession
	createErr error
	count     int64
	countErr  error
}

func (f *fakeWorkoutsRepo) Create(_ context.Context, s *models.WorkoutSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeWorkoutsRepo) CountByAccount(context.Context, string) (int64, error) {
	return f.count, f.countErr
}

type fakeExercisesRepo struct {
	catalog map[string]bool
	added   []models.ExerciseInput
	addErr  error
	types   []models.ExerciseType
	listErr error
}

func (f *fakeExercisesRepo) AddRecord(_ context.Context, _ string, in models.ExerciseInput) (bool, error) {
	if f.addErr != nil {
		return false, f.addErr
	}
	if !f.catalog[in.Name] {
		return false, nil
	}
	f.added = append(f.added, in)
	return true, nil
}

func (f *fakeExercisesRepo) ListTypes(context.Context) ([]models.ExerciseType, error) {
	return f.types, f.listErr
}

type increment struct {
	accountID string
	date      time.Time
	minutes   int
}

type fakeDailyRepo struct {
	increments []increment
	incErr     error
	points     []models.HeatmapPoint
	listErr    error
}

func (f *fakeDailyRepo) Increment(_ context.Context, accountID string, date time.Time, minutes int) (*models.DailyActivity, error) {
	if f.incErr != nil {
		return nil, f.incErr
	}
	f.increments = append(f.increments, increment{accountID, date, minutes})
	return &models.DailyActivity{AccountID: accountID, Date: date, WorkoutCount: len(f.increments), TotalDurationMinutes: minutes}, nil
}

func (f *fakeDailyRepo) ListByAccount(context.Context, string) ([]models.HeatmapPoint, error) {
	return f.points, f.listErr
}

// fakeRepoManager hands out the fakes above and remembers which handle each
// repository was bound to.
type fakeRepoManager struct {
	a *fakeAccountsRepo
	w *fakeWorkoutsRepo
	e *fakeExercisesRepo
	d *fakeDailyRepo

	boundTo []dbx.DBTX
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository {
	m.boundTo = append(m.boundTo, db)
	return m.a
}

func (m *fakeRepoManager) Workouts(db dbx.DBTX) workouts.Repository {
	m.boundTo = append(m.boundTo, db)
	return m.w
}

func (m *fakeRepoManager) Exercises(db dbx.DBTX) exercises.Repository {
	m.boundTo = append(m.boundTo, db)
	return m.e
}

func (m *fakeRepoManager) DailyActivity(db dbx.DBTX) dailyactivity.Repository {
	m.boundTo = append(m.boundTo, db)
	return m.d
}
