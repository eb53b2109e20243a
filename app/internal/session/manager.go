package session

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/agent"
)

type Repository interface {
	Init() error
	Close() error
	GetSession(sessionID string) (*entities.SessionData, error)
	CreateSession(sessionID string) (*entities.SessionData, error)
	RecordExchange(sessionID string, exchange entities.Exchange) (*entities.SessionData, error)
	ListSessions() (map[string]*entities.SessionData, error)
}

// SessionManager owns the mounted session logs and their usage statistics.
type SessionManager struct {
	asker      agent.Asker
	repository Repository

	mu   sync.Mutex
	logs map[string]*Log
}

// NewSessionManager creates a new SessionManager with the provided asker and repository
func NewSessionManager(asker agent.Asker, repo Repository) *SessionManager {
	return &SessionManager{
		asker:      asker,
		repository: repo,
		logs:       make(map[string]*Log),
	}
}

// Open mounts a new session and returns its ID.
func (sm *SessionManager) Open() (string, error) {
	sessionID := uuid.NewString()
	if _, err := sm.repository.CreateSession(sessionID); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	l := NewLog(sm.asker, WithOnExchange(func(ex entities.Exchange) {
		if _, err := sm.repository.RecordExchange(sessionID, ex); err != nil {
			log.Error("failed to record exchange usage", "session", sessionID, "err", err)
		}
	}))

	sm.mu.Lock()
	sm.logs[sessionID] = l
	sm.mu.Unlock()

	log.Info("session opened", "session", sessionID)
	return sessionID, nil
}

func (sm *SessionManager) lookup(sessionID string) (*Log, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	l, ok := sm.logs[sessionID]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return l, nil
}

// Submit forwards rawText to the session's log.
func (sm *SessionManager) Submit(sessionID, rawText string) error {
	l, err := sm.lookup(sessionID)
	if err != nil {
		return err
	}
	return l.Submit(rawText)
}

// Snapshot returns the current state of a mounted session.
func (sm *SessionManager) Snapshot(sessionID string) (entities.SessionState, error) {
	l, err := sm.lookup(sessionID)
	if err != nil {
		return entities.SessionState{}, err
	}
	return l.Snapshot(), nil
}

// Discard unmounts a session. Its exchanges are dropped; usage statistics stay.
func (sm *SessionManager) Discard(sessionID string) error {
	sm.mu.Lock()
	l, ok := sm.logs[sessionID]
	delete(sm.logs, sessionID)
	sm.mu.Unlock()

	if !ok {
		return entities.ErrSessionNotFound
	}
	l.Close()
	log.Info("session discarded", "session", sessionID)
	return nil
}

// Close discards every session and closes the repository.
func (sm *SessionManager) Close() error {
	sm.mu.Lock()
	logs := sm.logs
	sm.logs = make(map[string]*Log)
	sm.mu.Unlock()

	for _, l := range logs {
		l.Close()
	}
	if sm.repository != nil {
		return sm.repository.Close()
	}
	return nil
}

// GetSession retrieves usage statistics for a given session ID
func (sm *SessionManager) GetSession(sessionID string) (*entities.SessionData, error) {
	return sm.repository.GetSession(sessionID)
}

// ListSessions returns usage statistics for every session seen by this process
func (sm *SessionManager) ListSessions() (map[string]*entities.SessionData, error) {
	return sm.repository.ListSessions()
}
