package repository

import (
	"sync"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

// MemoryRepository keeps usage rows in a map. Rows are stored by value, so
// callers always get their own copy.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]entities.SessionData
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]entities.SessionData)}
}

func (r *MemoryRepository) Init() error  { return nil }
func (r *MemoryRepository) Close() error { return nil }

func (r *MemoryRepository) GetSession(sessionID string) (*entities.SessionData, error) {
	r.mu.RLock()
	row, ok := r.rows[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return &row, nil
}

// CreateSession inserts a zeroed row unless one exists already.
func (r *MemoryRepository) CreateSession(sessionID string) (*entities.SessionData, error) {
	return r.update(sessionID, nil), nil
}

// RecordExchange folds exchange into the session's row, creating it if needed.
func (r *MemoryRepository) RecordExchange(sessionID string, exchange entities.Exchange) (*entities.SessionData, error) {
	return r.update(sessionID, func(row *entities.SessionData) { row.Add(exchange) }), nil
}

func (r *MemoryRepository) update(sessionID string, fn func(*entities.SessionData)) *entities.SessionData {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[sessionID]
	if !ok {
		row = entities.SessionData{SessionID: sessionID}
	}
	if fn != nil {
		fn(&row)
	}
	r.rows[sessionID] = row
	return &row
}

func (r *MemoryRepository) ListSessions() (map[string]*entities.SessionData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*entities.SessionData, len(r.rows))
	for id, row := range r.rows {
		out[id] = &row
	}
	return out, nil
}
