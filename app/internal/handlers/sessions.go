package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

// maxQuestionBytes bounds the submit request body.
const maxQuestionBytes = 16 << 10

// Sessions is the subset of the session manager the HTTP surface needs.
type Sessions interface {
	Open() (string, error)
	Submit(sessionID, rawText string) error
	Snapshot(sessionID string) (entities.SessionState, error)
	Discard(sessionID string) error
}

// SessionsHandler mounts, drives and discards question sessions.
type SessionsHandler struct {
	sessions Sessions
}

// NewSessionsHandler creates a new SessionsHandler with injected dependencies
func NewSessionsHandler(sessions Sessions) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

type openResponse struct {
	SessionID string `json:"session_id"`
}

type submitRequest struct {
	Text string `json:"text"`
}

type submitResponse struct {
	Accepted bool `json:"accepted"`
}

// HandleOpen handles POST /v1/sessions.
func (h *SessionsHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.Open()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, openResponse{SessionID: id})
}

// HandleGet handles GET /v1/sessions/{id}.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Snapshot(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleDiscard handles DELETE /v1/sessions/{id}.
func (h *SessionsHandler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Discard(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmit handles POST /v1/sessions/{id}/questions. The answer arrives
// asynchronously; clients poll the session snapshot.
func (h *SessionsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	body := http.MaxBytesReader(w, r.Body, maxQuestionBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.sessions.Submit(r.PathValue("id"), req.Text); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{Accepted: true})
}
