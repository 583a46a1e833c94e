package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/fittrack/internal/server/auth"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/services"
	"github.com/dmitrijs2005/fittrack/internal/timex"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  AccountView `json:"user"`
}

// ExerciseRequest is one entry of a workout. Duration is in seconds; absent
// numbers count as zero.
type ExerciseRequest struct {
	Name     string `json:"name"`
	Sets     int    `json:"sets"`
	Reps     int    `json:"reps"`
	Duration int    `json:"duration"`
}

// WorkoutRequest is the body of POST /api/workouts. Duration is in minutes.
// Date (YYYY-MM-DD) is optional and defaults to today in UTC.
type WorkoutRequest struct {
	Exercises []ExerciseRequest `json:"exercises"`
	Duration  int               `json:"duration"`
	Date      string            `json:"date,omitempty"`
}

type WorkoutResponse struct {
	SessionID string   `json:"sessionId"`
	Recorded  int      `json:"recorded"`
	Skipped   []string `json:"skipped"`
}

type HeatmapEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type UserStatsResponse struct {
	TotalWorkouts int64 `json:"totalWorkouts"`
}

type ExerciseTypeView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := s.accounts.Signup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, SignupResponse{Message: "User created successfully", ID: account.ID})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token: res.Token,
		User:  AccountView{ID: res.Account.ID, Name: res.Account.Name, Email: res.Account.Email},
	})
}

func (s *Server) recordWorkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req WorkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := services.RecordInput{
		AccountID:       claims.AccountID,
		StartTime:       s.now(),
		DurationMinutes: req.Duration,
		Exercises:       make([]models.ExerciseInput, 0, len(req.Exercises)),
	}
	if req.Date != "" {
		day, err := timex.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		in.Date = day
	}
	for _, ex := range req.Exercises {
		in.Exercises = append(in.Exercises, models.ExerciseInput{
			Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps, DurationSeconds: ex.Duration,
		})
	}

	res, err := s.activity.Record(r.Context(), in)
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	skipped := res.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	writeJSON(w, http.StatusCreated, WorkoutResponse{SessionID: res.SessionID, Recorded: res.Recorded, Skipped: skipped})
}

func (s *Server) heatmap(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	points, err := s.stats.Heatmap(r.Context(), claims.AccountID, chi.URLParam(r, "accountID"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	out := make([]HeatmapEntry, 0, len(points))
	for _, p := range points {
		out = append(out, HeatmapEntry{Date: p.Date.UTC().Format(timex.DateLayout), Count: p.Count})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	n, err := s.stats.TotalWorkouts(r.Context(), claims.AccountID, chi.URLParam(r, "accountID"))
	if err != nil {
		s.mapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserStatsResponse{TotalWorkouts: n})
}

func (s *Server) exerciseTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.stats.Catalog(r.Context())
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	out := make([]ExerciseTypeView, 0, len(types))
	for _, t := range types {
		out = append(out, ExerciseTypeView{ID: t.ID, Name: t.Name, Category: t.Category})
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeBody reads a JSON body into dst, answering 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}
