package handlers

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/marketconnect/riskmap-agent/app/internal/agent"
)

// Manager is what the router needs from the session manager.
type Manager interface {
	Sessions
	SessionStats
}

// NewRouter wires every endpoint onto a fresh ServeMux.
func NewRouter(manager Manager, info agent.Info) http.Handler {
	sessions := NewSessionsHandler(manager)
	status := NewSessionStatusHandler(manager)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/sessions", sessions.HandleOpen)
	mux.HandleFunc("GET /v1/sessions/{id}", sessions.HandleGet)
	mux.HandleFunc("DELETE /v1/sessions/{id}", sessions.HandleDiscard)
	mux.HandleFunc("POST /v1/sessions/{id}/questions", sessions.HandleSubmit)
	mux.HandleFunc("GET /sessions/status", status.HandleList)
	mux.HandleFunc("GET /sessions/status/{id}", status.HandleSingle)
	mux.HandleFunc("GET /v1/zones", HandleZones)
	mux.HandleFunc("GET /v1/agent", NewAgentInfoHandler(info))

	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("http request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
