package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// mapError turns a service error into a status code and a client-safe
// message. Storage details never reach the client.
func (s *Server) mapError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, common.ErrSchemaMissing):
		writeError(w, http.StatusServiceUnavailable, "Database not set up. Run migrations.")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// validationMessage drops the sentinel prefix, leaving the detail added by
// the service.
func validationMessage(err error) string {
	msg := err.Error()
	if detail, ok := strings.CutPrefix(msg, common.ErrorValidation.Error()+": "); ok {
		return detail
	}
	return msg
}
