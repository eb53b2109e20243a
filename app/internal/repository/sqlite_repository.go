package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

const (
	createUsageTable = `
CREATE TABLE IF NOT EXISTS session_usage (
    session_id              TEXT PRIMARY KEY,
    total_prompt_tokens     INTEGER NOT NULL DEFAULT 0,
    total_completion_tokens INTEGER NOT NULL DEFAULT 0,
    total_tokens            INTEGER NOT NULL DEFAULT 0,
    request_count           INTEGER NOT NULL DEFAULT 0,
    failed_count            INTEGER NOT NULL DEFAULT 0
);`

	usageColumns = `session_id, total_prompt_tokens, total_completion_tokens, total_tokens, request_count, failed_count`

	selectUsage    = `SELECT ` + usageColumns + ` FROM session_usage WHERE session_id = ?;`
	selectAllUsage = `SELECT ` + usageColumns + ` FROM session_usage ORDER BY session_id;`

	insertUsage = `INSERT INTO session_usage (session_id) VALUES (?) ON CONFLICT(session_id) DO NOTHING;`

	addUsage = `
INSERT INTO session_usage (` + usageColumns + `)
VALUES (?, ?, ?, ?, 1, ?)
ON CONFLICT(session_id) DO UPDATE SET
    total_prompt_tokens     = total_prompt_tokens + excluded.total_prompt_tokens,
    total_completion_tokens = total_completion_tokens + excluded.total_completion_tokens,
    total_tokens            = total_tokens + excluded.total_tokens,
    request_count           = request_count + 1,
    failed_count            = failed_count + excluded.failed_count;`
)

// SQLiteRepository stores usage rows in SQLite through mattn/go-sqlite3.
type SQLiteRepository struct {
	db  *sql.DB
	dsn string
}

// NewSQLiteRepository opens dsn. The default DSN names a shared in-memory
// database, which lives as long as the repository keeps its connection.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single long-lived connection serializes writers and keeps an
	// in-memory database from being dropped.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &SQLiteRepository{db: db, dsn: dsn}, nil
}

func (r *SQLiteRepository) Init() error {
	if _, err := r.db.Exec(createUsageTable); err != nil {
		return fmt.Errorf("failed to create session_usage table: %w", err)
	}
	log.Debug("sqlite usage table ready", "dsn", r.dsn)
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUsage(row rowScanner) (*entities.SessionData, error) {
	var d entities.SessionData
	if err := row.Scan(&d.SessionID, &d.TotalPromptTokens, &d.TotalCompletionTokens,
		&d.TotalTokens, &d.RequestCount, &d.FailedCount); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SQLiteRepository) GetSession(sessionID string) (*entities.SessionData, error) {
	d, err := scanUsage(r.db.QueryRow(selectUsage, sessionID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, entities.ErrSessionNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to get session usage: %w", err)
	}
	return d, nil
}

// CreateSession inserts a zeroed row unless one exists already.
func (r *SQLiteRepository) CreateSession(sessionID string) (*entities.SessionData, error) {
	return r.writeAndRead(sessionID, insertUsage, sessionID)
}

// RecordExchange folds exchange into the session's row, creating it if needed.
func (r *SQLiteRepository) RecordExchange(sessionID string, exchange entities.Exchange) (*entities.SessionData, error) {
	failed := 0
	if exchange.Failed {
		failed = 1
	}
	return r.writeAndRead(sessionID, addUsage, sessionID,
		exchange.PromptTokens, exchange.CompletionTokens, exchange.TotalTokens, failed)
}

// writeAndRead runs stmt and re-reads the row in one transaction.
func (r *SQLiteRepository) writeAndRead(sessionID, stmt string, args ...any) (*entities.SessionData, error) {
	ctx := context.Background()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to write session usage: %w", err)
	}
	d, err := scanUsage(tx.QueryRowContext(ctx, selectUsage, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session usage back: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) ListSessions() (map[string]*entities.SessionData, error) {
	rows, err := r.db.Query(selectAllUsage)
	if err != nil {
		return nil, fmt.Errorf("failed to list session usage: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entities.SessionData)
	for rows.Next() {
		d, err := scanUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session usage: %w", err)
		}
		out[d.SessionID] = d
	}
	return out, rows.Err()
}
