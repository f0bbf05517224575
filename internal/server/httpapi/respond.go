package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/timebank/internal/common"
)

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "error writing response", "error", err.Error())
	}
}

// writeError maps service errors onto HTTP status codes. Unknown errors
// are logged and reported as 500.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrorUnauthenticated), errors.Is(err, common.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorProfileNotFound), errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrorInvalidDuration),
		errors.Is(err, common.ErrorInvalidTaskType),
		errors.Is(err, common.ErrorInsufficientCredits),
		errors.Is(err, common.ErrorNoFields),
		errors.Is(err, common.ErrorNotAvailable),
		errors.Is(err, common.ErrorSelfAssignment),
		errors.Is(err, common.ErrorMissingEvidence),
		errors.Is(err, common.ErrorWrongStatus):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err.Error())
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
