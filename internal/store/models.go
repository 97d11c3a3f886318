package store

import (
	"context"
	"time"
)

// Document is one retrieved unit of context: its text plus metadata
// (currently just the source identifier). Retrieval produces these,
// the prompt-assembly chain consumes them, and nothing mutates them.
type Document struct {
	PageContent string            `json:"page_content"`
	Metadata    map[string]string `json:"metadata"`
}

// ChatMessage is one turn of a persisted session transcript.
type ChatMessage struct {
	ID        string    `json:"id"` // UUID
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"` // "user" or "model"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// DataChunk is a row of the vector index: a piece of source text and
// its embedding.
type DataChunk struct {
	ID            int64     `json:"id"`
	Source        string    `json:"source"`
	Content       string    `json:"content"`
	Embedding     []float32 `json:"-"` // internal, not part of any response
	EmbeddingJSON string    `json:"-"` // persisted form
}

// EmbedFunc turns text into an embedding vector. The store is agnostic
// of which backend computes it.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// VectorStore supports nearest-neighbor lookup over embedded documents.
type VectorStore interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error)
}

// ChatHistory is a per-(session, user) transcript accessor.
type ChatHistory interface {
	AddMessage(ctx context.Context, role, content string) error
	Messages(ctx context.Context) ([]ChatMessage, error)
	Clear(ctx context.Context) error
}
