package repository

import (
	"fmt"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

// Backend names accepted by New.
const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
)

// Repository stores per-session usage statistics.
type Repository interface {
	// Init prepares storage, e.g. creates tables. It is safe to call twice.
	Init() error
	Close() error

	GetSession(sessionID string) (*entities.SessionData, error)
	CreateSession(sessionID string) (*entities.SessionData, error)
	RecordExchange(sessionID string, exchange entities.Exchange) (*entities.SessionData, error)
	ListSessions() (map[string]*entities.SessionData, error)
}

// New returns the backend named by kind. An empty kind means memory.
func New(kind, sqliteDSN string) (Repository, error) {
	switch kind {
	case TypeMemory, "":
		return NewMemoryRepository(), nil
	case TypeSQLite:
		return NewSQLiteRepository(sqliteDSN)
	default:
		return nil, fmt.Errorf("unknown repository type %q", kind)
	}
}
