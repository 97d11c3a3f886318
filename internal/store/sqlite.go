package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"kainos.com/bid-assist/internal/utils"
)

// SQLiteIndex is the on-disk vector index. All chunks are loaded into
// memory once at open time and are read-only afterwards; similarity
// search never touches the database again.
type SQLiteIndex struct {
	db     *sql.DB
	embed  EmbedFunc
	chunks []DataChunk
}

func OpenSQLiteIndex(dataSourceName string, embed EmbedFunc) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping index database: %w", err)
	}

	idx := &SQLiteIndex{db: db, embed: embed}
	if err = idx.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}

	idx.chunks, err = idx.loadChunks()
	if err != nil {
		return nil, fmt.Errorf("failed to load index chunks: %w", err)
	}
	if len(idx.chunks) == 0 {
		log.Println("Warning: vector index opened with no chunks. Run with -ingest to populate it.")
	} else {
		log.Printf("Vector index loaded with %d chunks.", len(idx.chunks))
	}
	return idx, nil
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteIndex) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS data_chunks (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        source TEXT NOT NULL,
        content TEXT NOT NULL,
        embedding_json TEXT -- JSON-encoded []float32
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteIndex) loadChunks() ([]DataChunk, error) {
	rows, err := s.db.Query("SELECT id, source, content, embedding_json FROM data_chunks")
	if err != nil {
		return nil, fmt.Errorf("failed to query data_chunks: %w", err)
	}
	defer rows.Close()

	var chunks []DataChunk
	for rows.Next() {
		var chunk DataChunk
		var embeddingJSON string
		if err := rows.Scan(&chunk.ID, &chunk.Source, &chunk.Content, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan data_chunk row: %w", err)
		}
		if embeddingJSON != "" {
			if err := json.Unmarshal([]byte(embeddingJSON), &chunk.Embedding); err != nil {
				log.Printf("Warning: failed to unmarshal embedding for chunk %d (content: %.50s...): %v. Embedding will be empty.", chunk.ID, chunk.Content, err)
				chunk.Embedding = nil
			}
		} else {
			log.Printf("Warning: empty embedding_json for chunk ID %d. Embedding will be empty.", chunk.ID)
			chunk.Embedding = nil
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

type scoredChunk struct {
	chunk      DataChunk
	similarity float32
}

// SimilaritySearch embeds the query and returns the k nearest chunks as
// documents, most similar first.
func (s *SQLiteIndex) SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error) {
	if len(s.chunks) == 0 {
		log.Println("No chunks available in the vector index.")
		return nil, nil
	}

	queryEmbedding, err := s.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get query embedding: %w", err)
	}

	scored := make([]scoredChunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		if len(chunk.Embedding) == 0 {
			log.Printf("Skipping chunk ID %d due to missing embedding.", chunk.ID)
			continue
		}
		similarity, err := utils.CosineSimilarity(queryEmbedding, chunk.Embedding)
		if err != nil {
			log.Printf("Error calculating similarity for chunk %d: %v. Skipping.", chunk.ID, err)
			continue
		}
		scored = append(scored, scoredChunk{chunk: chunk, similarity: similarity})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})

	if k > len(scored) {
		k = len(scored)
	}
	docs := make([]Document, 0, k)
	for _, sc := range scored[:k] {
		docs = append(docs, Document{
			PageContent: sc.chunk.Content,
			Metadata:    map[string]string{"source": sc.chunk.Source},
		})
	}
	return docs, nil
}

func (s *SQLiteIndex) createDataChunk(chunk *DataChunk) error {
	embeddingBytes, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}
	chunk.EmbeddingJSON = string(embeddingBytes)

	stmt, err := s.db.Prepare("INSERT INTO data_chunks (source, content, embedding_json) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare data_chunk insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(chunk.Source, chunk.Content, chunk.EmbeddingJSON)
	if err != nil {
		return fmt.Errorf("failed to execute data_chunk insert: %w", err)
	}
	chunk.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteIndex) clearChunks() error {
	_, err := s.db.Exec("DELETE FROM data_chunks")
	if err != nil {
		return fmt.Errorf("failed to delete data_chunks: %w", err)
	}
	_, err = s.db.Exec("DELETE FROM sqlite_sequence WHERE name='data_chunks'")
	if err != nil && !strings.Contains(err.Error(), "no such table") {
		log.Printf("Warning: could not reset sequence for data_chunks: %v", err)
	}
	return nil
}

// IngestFromFile reads a Markdown table of project descriptions, embeds
// each row, and replaces the index contents. The in-memory chunk cache
// is reloaded afterwards.
func (s *SQLiteIndex) IngestFromFile(ctx context.Context, filePath string) (int, error) {
	contentBytes, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read data file %s: %w", filePath, err)
	}
	lines := strings.Split(string(contentBytes), "\n")

	var rawChunks []string
	for i, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" {
			continue
		}

		// Skip table header and separator
		if i == 0 && strings.Contains(trimmedLine, "|") && (strings.Contains(strings.ToLower(trimmedLine), "text") || strings.Contains(strings.ToLower(trimmedLine), "content")) {
			log.Printf("Skipping table header: %s", trimmedLine)
			continue
		}
		if i == 1 && strings.Contains(trimmedLine, "|") && strings.Contains(trimmedLine, "---") {
			log.Printf("Skipping table separator: %s", trimmedLine)
			continue
		}

		// Single-column Markdown table row: | some content |
		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			parts := strings.Split(trimmedLine, "|")
			if len(parts) >= 3 {
				cellContent := strings.TrimSpace(parts[1])
				if cellContent != "" {
					rawChunks = append(rawChunks, cellContent)
				} else {
					log.Printf("Skipping row with empty cell content: %s", trimmedLine)
				}
			} else {
				log.Printf("Skipping malformed table row (not enough '|'): %s", trimmedLine)
			}
		} else if i > 1 {
			log.Printf("Skipping line not matching table row format: %s", trimmedLine)
		}
	}

	if len(rawChunks) == 0 {
		log.Println("No chunks generated from data file. Ensure it's a Markdown table with a 'text' column and content.")
		return 0, nil
	}

	log.Printf("Generated %d raw chunks from table. Now embedding (this may take a while)...", len(rawChunks))

	if err := s.clearChunks(); err != nil {
		return 0, fmt.Errorf("failed to clear existing data chunks: %w", err)
	}

	sourceName := filepath.Base(filePath)
	count := 0

	ticker := time.NewTicker(40 * time.Millisecond) // delay to not hit rate limit (1500/min)
	defer ticker.Stop()

	for i, rawChunk := range rawChunks {
		<-ticker.C

		embedding, err := s.embed(ctx, rawChunk)
		if err != nil {
			log.Printf("Failed to generate embedding for chunk %d (\"%.50s...\"): %v. Skipping.", i+1, rawChunk, err)
			continue
		}

		chunk := DataChunk{
			Source:    fmt.Sprintf("%s#%d", sourceName, i+1),
			Content:   rawChunk,
			Embedding: embedding,
		}
		if err := s.createDataChunk(&chunk); err != nil {
			log.Printf("Failed to store data chunk %d: %v. Skipping.", i+1, err)
			continue
		}
		count++
		if count%10 == 0 || count == len(rawChunks) {
			log.Printf("Ingested %d/%d chunks...", count, len(rawChunks))
		}
	}
	log.Printf("Successfully ingested %d chunks.", count)

	s.chunks, err = s.loadChunks()
	if err != nil {
		return count, fmt.Errorf("failed to reload index chunks after ingestion: %w", err)
	}
	return count, nil
}
