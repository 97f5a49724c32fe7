package httpapi

import (
	"encoding/json"
	"net/http"

	"brasserie/internal/httplog"

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

func writeBadRequest(w http.ResponseWriter, msg string, details ...string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Details: details})
}

// writeInternal logs the cause; the client only sees a generic message.
func writeInternal(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path,
		"request_id", httplog.RequestID(r), "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
