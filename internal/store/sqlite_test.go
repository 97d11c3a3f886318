package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbed maps text to a fixed two-dimensional vector so that
// ranking is deterministic: anything mentioning "cloud" lands on one
// axis, everything else on the other.
func keywordEmbed(calls *int) EmbedFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		if calls != nil {
			*calls++
		}
		if strings.Contains(text, "cloud") {
			return []float32{1, 0}, nil
		}
		return []float32{0, 1}, nil
	}
}

func writeDataFile(t *testing.T, rows ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("| text |\n")
	b.WriteString("| --- |\n")
	for _, row := range rows {
		b.WriteString("| " + row + " |\n")
	}
	path := filepath.Join(t.TempDir(), "data.md")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestSQLiteIndexIngestAndSearch(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.db")
	idx, err := OpenSQLiteIndex(indexPath, keywordEmbed(nil))
	require.NoError(t, err)
	defer idx.Close()

	dataPath := writeDataFile(t,
		"cloud migration for a public body",
		"mobile app for field engineers",
		"cloud data platform rollout",
	)

	count, err := idx.IngestFromFile(context.Background(), dataPath)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	docs, err := idx.SimilaritySearch(context.Background(), "cloud experience", 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Both cloud chunks outrank the mobile one, in ingestion order.
	assert.Equal(t, "cloud migration for a public body", docs[0].PageContent)
	assert.Equal(t, "cloud data platform rollout", docs[1].PageContent)
	assert.Equal(t, "data.md#1", docs[0].Metadata["source"])
	assert.Equal(t, "data.md#3", docs[1].Metadata["source"])
}

func TestSQLiteIndexPersistsAcrossReopen(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.db")

	idx, err := OpenSQLiteIndex(indexPath, keywordEmbed(nil))
	require.NoError(t, err)
	dataPath := writeDataFile(t, "cloud migration project")
	_, err = idx.IngestFromFile(context.Background(), dataPath)
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	reopened, err := OpenSQLiteIndex(indexPath, keywordEmbed(nil))
	require.NoError(t, err)
	defer reopened.Close()

	docs, err := reopened.SimilaritySearch(context.Background(), "cloud", 3)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "cloud migration project", docs[0].PageContent)
}

func TestSQLiteIndexEmptySearch(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.db")
	embedCalls := 0
	idx, err := OpenSQLiteIndex(indexPath, keywordEmbed(&embedCalls))
	require.NoError(t, err)
	defer idx.Close()

	docs, err := idx.SimilaritySearch(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Zero(t, embedCalls, "empty index must not embed the query")
}

func TestSQLiteIndexTopKClamped(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.db")
	idx, err := OpenSQLiteIndex(indexPath, keywordEmbed(nil))
	require.NoError(t, err)
	defer idx.Close()

	dataPath := writeDataFile(t, "cloud one", "cloud two")
	_, err = idx.IngestFromFile(context.Background(), dataPath)
	require.NoError(t, err)

	docs, err := idx.SimilaritySearch(context.Background(), "cloud", 10)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
