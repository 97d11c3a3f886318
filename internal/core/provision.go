package core

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"kainos.com/bid-assist/internal/config"
	"kainos.com/bid-assist/internal/store"
)

// ProvisionOptions selects which optional resources a handler needs on
// top of the chat model.
type ProvisionOptions struct {
	VectorStore  bool
	HistoryStore bool
}

// Resources holds the per-request view of the backend: a chat model,
// an optional vector store, and an optional chat-history accessor.
type Resources struct {
	Model   ChatModel
	Store   store.VectorStore
	History store.ChatHistory
}

// Backend is the provisioning strategy chosen once at process start:
// Gemini plus the managed history database when a Gemini API key is
// configured, Ollama plus local files otherwise. The vector index is
// opened lazily, exactly once, and is read-only afterwards.
type Backend struct {
	name       string
	newModel   func() ChatModel
	embed      store.EmbedFunc
	newHistory func(sessionID, userID string) (store.ChatHistory, error)

	indexPath string
	indexOnce sync.Once
	index     *store.SQLiteIndex
	indexErr  error

	geminiClient *genai.Client
	historyDB    *store.HistoryDB
}

func NewBackend(ctx context.Context) (*Backend, error) {
	cfg := config.AppConfig

	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create GenAI client: %w", err)
		}
		historyDB, err := store.OpenHistoryDB(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}

		embedder := NewGeminiEmbedder(client, cfg.GeminiEmbeddingModel)
		return &Backend{
			name:     "gemini",
			newModel: func() ChatModel { return NewGeminiModel(client, cfg.GeminiChatModel) },
			embed:    embedder.Embed,
			newHistory: func(sessionID, userID string) (store.ChatHistory, error) {
				return historyDB.Session(sessionID, userID), nil
			},
			indexPath:    cfg.IndexPath,
			geminiClient: client,
			historyDB:    historyDB,
		}, nil
	}

	log.Println("No Gemini API key set, using Ollama models and local stores")

	embedder := NewOllamaEmbedder(cfg.OllamaBaseURL, cfg.OllamaEmbeddingModel)
	return &Backend{
		name:     "ollama",
		newModel: func() ChatModel { return NewOllamaModel(cfg.OllamaBaseURL, cfg.OllamaChatModel) },
		embed:    embedder.Embed,
		newHistory: func(sessionID, userID string) (store.ChatHistory, error) {
			return store.NewFileHistory(cfg.HistoryDir, sessionID, userID)
		},
		indexPath: cfg.IndexPath,
	}, nil
}

func (b *Backend) Name() string {
	return b.name
}

// OpenIndex opens the on-disk vector index bound to this backend's
// embeddings. The first call loads it; later calls return the same
// instance.
func (b *Backend) OpenIndex() (*store.SQLiteIndex, error) {
	b.indexOnce.Do(func() {
		b.index, b.indexErr = store.OpenSQLiteIndex(b.indexPath, b.embed)
	})
	return b.index, b.indexErr
}

func (b *Backend) Provision(ctx context.Context, sessionID, userID string, opts ProvisionOptions) (*Resources, error) {
	res := &Resources{Model: b.newModel()}

	if opts.VectorStore {
		idx, err := b.OpenIndex()
		if err != nil {
			return nil, fmt.Errorf("failed to provision vector store: %w", err)
		}
		res.Store = idx
	}

	if opts.HistoryStore {
		history, err := b.newHistory(sessionID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to provision history store: %w", err)
		}
		res.History = history
	}

	return res, nil
}

func (b *Backend) Close() {
	if b.index != nil {
		if err := b.index.Close(); err != nil {
			log.Printf("Error closing vector index: %v", err)
		}
	}
	if b.historyDB != nil {
		if err := b.historyDB.Close(); err != nil {
			log.Printf("Error closing history database: %v", err)
		}
	}
	if b.geminiClient != nil {
		if err := b.geminiClient.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		} else {
			log.Println("GenAI client closed.")
		}
	}
}
