package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", "err", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrEmptyQuestion):
		http.Error(w, "Question is empty", http.StatusBadRequest)
	case errors.Is(err, entities.ErrRequestPending):
		http.Error(w, "A question is already in flight", http.StatusConflict)
	case errors.Is(err, entities.ErrLogClosed):
		http.Error(w, "Session is closed", http.StatusGone)
	default:
		log.Error("request failed", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
