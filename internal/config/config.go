package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Cloud backend. Presence of the API key selects it at startup.
	GeminiAPIKey         string
	GeminiChatModel      string
	GeminiEmbeddingModel string

	// Local backend, used when no Gemini key is configured.
	OllamaBaseURL        string
	OllamaChatModel      string
	OllamaEmbeddingModel string

	IndexPath   string // on-disk vector index (SQLite)
	DatabaseURL string // chat history database (cloud backend)
	HistoryDir  string // chat transcript files (local backend)

	HTTPPort  string
	LogLevel  string
	JWTSecret string // optional; empty means every caller is anonymous
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-1.5-flash-latest"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaChatModel:      getEnv("OLLAMA_CHAT_MODEL", "llama3.2"),
		OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		IndexPath:            getEnv("INDEX_PATH", "bid_index.db"),
		DatabaseURL:          getEnv("DATABASE_URL", "bid_assist.db"),
		HistoryDir:           getEnv("HISTORY_DIR", "chat_history"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
