package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHistoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	history, err := NewFileHistory(dir, "session-1", "user-1")
	require.NoError(t, err)

	messages, err := history.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)

	require.NoError(t, history.AddMessage(ctx, "user", "hello"))
	require.NoError(t, history.AddMessage(ctx, "model", "hi there"))

	messages, err = history.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "model", messages[1].Role)
	assert.Equal(t, "session-1", messages[0].SessionID)
	assert.Equal(t, "user-1", messages[0].UserID)
	assert.NotEmpty(t, messages[0].ID)
}

func TestFileHistorySessionsIsolated(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileHistory(dir, "session-a", "user-1")
	require.NoError(t, err)
	second, err := NewFileHistory(dir, "session-b", "user-1")
	require.NoError(t, err)

	require.NoError(t, first.AddMessage(ctx, "user", "only in a"))

	messages, err := second.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestFileHistoryClear(t *testing.T) {
	ctx := context.Background()
	history, err := NewFileHistory(t.TempDir(), "session-1", "user-1")
	require.NoError(t, err)

	require.NoError(t, history.AddMessage(ctx, "user", "hello"))
	require.NoError(t, history.Clear(ctx))
	require.NoError(t, history.Clear(ctx), "clearing an already empty session is not an error")

	messages, err := history.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSQLiteHistoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	db, err := OpenHistoryDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	history := db.Session("session-1", "user-1")
	other := db.Session("session-1", "user-2")

	require.NoError(t, history.AddMessage(ctx, "user", "hello"))
	require.NoError(t, history.AddMessage(ctx, "model", "hi there"))
	require.NoError(t, other.AddMessage(ctx, "user", "different user"))

	messages, err := history.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "hi there", messages[1].Content)

	// Same session id, different user id: distinct transcripts.
	otherMessages, err := other.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, otherMessages, 1)
	assert.Equal(t, "different user", otherMessages[0].Content)

	require.NoError(t, history.Clear(ctx))
	messages, err = history.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
