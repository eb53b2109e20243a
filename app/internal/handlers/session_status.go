package handlers

import (
	"net/http"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

type SessionStats interface {
	GetSession(sessionID string) (*entities.SessionData, error)
	ListSessions() (map[string]*entities.SessionData, error)
}

// SessionStatusHandler handles requests to get session usage statistics
type SessionStatusHandler struct {
	stats SessionStats
}

// NewSessionStatusHandler creates a new SessionStatusHandler with injected dependencies
func NewSessionStatusHandler(stats SessionStats) *SessionStatusHandler {
	return &SessionStatusHandler{
		stats: stats,
	}
}

// HandleSingle handles GET /sessions/status/{id}
func (ssh *SessionStatusHandler) HandleSingle(w http.ResponseWriter, r *http.Request) {
	sessionData, err := ssh.stats.GetSession(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionData)
}

// HandleList handles GET /sessions/status
func (ssh *SessionStatusHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	allSessions, err := ssh.stats.ListSessions()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, allSessions)
}
