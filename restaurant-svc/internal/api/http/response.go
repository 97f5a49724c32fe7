package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"brasserie/internal/httplog"
	"brasserie/restaurant-svc/internal/domain"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// writeDomainError answers with the status that matches the error kind.
// Anything unclassified is a dependency failure: it is logged and the client
// only gets a generic message.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		transition *domain.TransitionError
		state      *domain.StateError
	)
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message, validation.Details...)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &transition):
		writeError(w, http.StatusConflict, transition.Error())
	case errors.As(err, &state):
		writeError(w, http.StatusConflict, state.Error())
	default:
		logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path,
			"request_id", httplog.RequestID(r), "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
