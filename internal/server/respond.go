package server

import (
	"encoding/json"
	"net/http"

	"dompet/categorizer/internal/logging"
)

// apiError is the machine-readable error envelope shared by all endpoints.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, logger logging.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// The status line is already written; all we can do is log.
		logger.WithError(err).Error("Failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, logger logging.Logger, status int, code, message string) {
	respondJSON(w, logger, status, apiError{Error: code, Message: message})
}
