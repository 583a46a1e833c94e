// Package server initializes and runs the fittrack API server.
// It opens the database pool, applies migrations, wires the services and
// starts the HTTP server, shutting everything down on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server/auth"
	"github.com/dmitrijs2005/fittrack/internal/server/config"
	"github.com/dmitrijs2005/fittrack/internal/server/httpapi"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fittrack/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	tokenService    *auth.TokenService
	accountService  *services.AccountService
	activityService *services.ActivityService
	statsService    *services.StatsService
}

// OpenDB opens the pgx-backed pool sized from config and checks it is reachable.
func OpenDB(ctx context.Context, c *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, c.RequestTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)
	// goose and net/http write through the log package; route them to the same handler.
	slog.SetDefault(logger.Slog())

	db, err := OpenDB(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenIssuer, c.TokenValidityDuration)

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		repomanager:     rm,
		tokenService:    tokens,
		accountService:  services.NewAccountService(db, rm, hasher, tokens, logger.With("service", "accounts")),
		activityService: services.NewActivityService(db, rm, logger.With("service", "activity")),
		statsService:    services.NewStatsService(db, rm, logger.With("service", "stats")),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(httpapi.Options{
		Address:        app.config.EndpointAddrHTTP,
		RequestTimeout: app.config.RequestTimeout,
		AllowedOrigins: app.config.AllowedOrigins,
	}, app.logger, app.accountService, app.activityService, app.statsService, app.tokenService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until the server stops, either because ctx was cancelled, a
// signal arrived or the listener failed.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
