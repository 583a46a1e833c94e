// Package httpapi exposes the fittrack services over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server/auth"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// AccountService is the credential store as seen by the handlers.
type AccountService interface {
	Signup(ctx context.Context, email, name, secret string) (*models.Account, error)
	Login(ctx context.Context, email, secret string) (*services.LoginResult, error)
}

// ActivityService records workouts.
type ActivityService interface {
	Record(ctx context.Context, in services.RecordInput) (*models.RecordResult, error)
}

// StatsService answers the read-only queries.
type StatsService interface {
	Heatmap(ctx context.Context, actor, accountID string) ([]models.HeatmapPoint, error)
	TotalWorkouts(ctx context.Context, actor, accountID string) (int64, error)
	Catalog(ctx context.Context) ([]models.ExerciseType, error)
}

// TokenValidator checks bearer tokens.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Options carries the transport settings taken from config.
type Options struct {
	Address        string
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type Server struct {
	opts     Options
	logger   logging.Logger
	accounts AccountService
	activity ActivityService
	stats    StatsService
	tokens   TokenValidator
	now      func() time.Time
}

func NewServer(opts Options, l logging.Logger, as AccountService, acts ActivityService, ss StatsService, tv TokenValidator) *Server {
	return &Server{
		opts:     opts,
		logger:   l.With("module", "http_server"),
		accounts: as,
		activity: acts,
		stats:    ss,
		tokens:   tv,
		now:      time.Now,
	}
}

// Router builds the full route tree. Everything except /metrics and the
// banner lives under /api.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)
	if s.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("fittrack backend is running"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		mountDocs(r)

		r.Post("/signup", s.signup)
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/workouts", s.recordWorkout)
			r.Get("/heatmap/{accountID}", s.heatmap)
			r.Get("/user-stats/{accountID}", s.userStats)
			r.Get("/exercise-types", s.exerciseTypes)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
