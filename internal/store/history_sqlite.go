package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// HistoryDB wraps the chat-history database used by the cloud backend.
// One HistoryDB is opened per process; per-request ChatHistory accessors
// are cheap views over it.
type HistoryDB struct {
	db *sql.DB
}

func OpenHistoryDB(dataSourceName string) (*HistoryDB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	h := &HistoryDB{db: db}
	if err = h.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return h, nil
}

func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func (h *HistoryDB) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS history_messages (
        id TEXT PRIMARY KEY, -- UUID
        session_id TEXT NOT NULL,
        user_id TEXT NOT NULL,
        role TEXT NOT NULL CHECK (role IN ('user', 'model')),
        content TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_history_session ON history_messages (session_id, user_id, created_at);
    `
	_, err := h.db.Exec(schema)
	return err
}

// Session returns the transcript accessor for one (session, user) pair.
func (h *HistoryDB) Session(sessionID, userID string) ChatHistory {
	return &sqliteHistory{db: h.db, sessionID: sessionID, userID: userID}
}

type sqliteHistory struct {
	db        *sql.DB
	sessionID string
	userID    string
}

func (s *sqliteHistory) AddMessage(ctx context.Context, role, content string) error {
	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO history_messages (id, session_id, user_id, role, content, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, uuid.NewString(), s.sessionID, s.userID, role, content, time.Now())
	if err != nil {
		return fmt.Errorf("failed to execute history insert: %w", err)
	}
	return nil
}

func (s *sqliteHistory) Messages(ctx context.Context) ([]ChatMessage, error) {
	query := `
        SELECT id, session_id, user_id, role, content, created_at
        FROM history_messages
        WHERE session_id = ? AND user_id = ?
        ORDER BY created_at ASC
    `
	rows, err := s.db.QueryContext(ctx, query, s.sessionID, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history messages: %w", err)
	}
	defer rows.Close()

	var messages []ChatMessage
	for rows.Next() {
		var msg ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *sqliteHistory) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history_messages WHERE session_id = ? AND user_id = ?", s.sessionID, s.userID)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
