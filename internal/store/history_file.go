package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// fileHistory stores a session transcript as one JSON file per session
// under a local directory. Used by the local backend instead of a
// managed database.
type fileHistory struct {
	dir       string
	sessionID string
	userID    string
}

func NewFileHistory(dir, sessionID, userID string) (ChatHistory, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}
	return &fileHistory{dir: dir, sessionID: sessionID, userID: userID}, nil
}

func (f *fileHistory) path() string {
	return filepath.Join(f.dir, f.sessionID+".json")
}

func (f *fileHistory) read() ([]ChatMessage, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var messages []ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", f.path(), err)
	}
	return messages, nil
}

func (f *fileHistory) AddMessage(ctx context.Context, role, content string) error {
	messages, err := f.read()
	if err != nil {
		return err
	}
	messages = append(messages, ChatMessage{
		ID:        uuid.NewString(),
		SessionID: f.sessionID,
		UserID:    f.userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(f.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

func (f *fileHistory) Messages(ctx context.Context) ([]ChatMessage, error) {
	return f.read()
}

func (f *fileHistory) Clear(ctx context.Context) error {
	err := os.Remove(f.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	return nil
}
