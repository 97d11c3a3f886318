package core

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kainos.com/bid-assist/internal/store"
)

type stubModel struct {
	generateCalls   int
	structuredCalls int
	lastSystem      string
	lastUser        string
	reply           string
	structured      any
}

func (s *stubModel) Generate(ctx context.Context, system, user string) (string, error) {
	s.generateCalls++
	s.lastSystem = system
	s.lastUser = user
	return s.reply, nil
}

func (s *stubModel) GenerateStructured(ctx context.Context, system, user string, schema *Schema, out any) error {
	s.structuredCalls++
	s.lastSystem = system
	s.lastUser = user
	data, err := json.Marshal(s.structured)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func TestFormatDocumentsEmpty(t *testing.T) {
	assert.Equal(t, "", FormatDocuments(nil, defaultDocumentTemplate, defaultDocumentSeparator))
	assert.Equal(t, "", FormatDocuments([]store.Document{}, defaultDocumentTemplate, defaultDocumentSeparator))
}

func TestFormatDocumentsTemplate(t *testing.T) {
	docs := []store.Document{
		{PageContent: "hello world", Metadata: map[string]string{"source": "data.md#1"}},
	}
	got := FormatDocuments(docs, defaultDocumentTemplate, defaultDocumentSeparator)
	assert.Equal(t, "[data.md#1]: hello world\n", got)
}

func TestFormatDocumentsSeparatorsAndOrder(t *testing.T) {
	docs := []store.Document{
		{PageContent: "first", Metadata: map[string]string{"source": "a"}},
		{PageContent: "second", Metadata: map[string]string{"source": "b"}},
		{PageContent: "third", Metadata: map[string]string{"source": "c"}},
	}
	got := FormatDocuments(docs, "{page_content}", "|")

	assert.Equal(t, 2, strings.Count(got, "|"), "n documents should yield n-1 separators")
	assert.Equal(t, "first|second|third", got, "input order must be preserved")
}

func TestNewStuffDocumentsChainRequiresContextPlaceholder(t *testing.T) {
	model := &stubModel{}

	_, err := NewStuffDocumentsChain(model, "a prompt with no placeholder", ProjectsSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context")
	assert.Zero(t, model.structuredCalls, "construction failure must not invoke the model")

	_, err = NewStuffDocumentsChain(model, "sources:\n{context}", ProjectsSchema())
	assert.NoError(t, err)
}

func TestStuffDocumentsChainInvoke(t *testing.T) {
	model := &stubModel{
		structured: ProjectsAnswer{Projects: []Project{{Name: "A", Description: "d"}}},
	}
	chain, err := NewStuffDocumentsChain(model, "Use only these sources:\n{context}\nAnswer briefly.", ProjectsSchema())
	require.NoError(t, err)

	docs := []store.Document{
		{PageContent: "proj one", Metadata: map[string]string{"source": "data.md#1"}},
		{PageContent: "proj two", Metadata: map[string]string{"source": "data.md#2"}},
	}

	var answer ProjectsAnswer
	err = chain.Invoke(context.Background(), ChainInput{Input: "which projects fit?", Context: docs}, &answer)
	require.NoError(t, err)

	assert.Equal(t, 1, model.structuredCalls)
	assert.Equal(t, "which projects fit?", model.lastUser)
	assert.Contains(t, model.lastSystem, "[data.md#1]: proj one\n")
	assert.Contains(t, model.lastSystem, "[data.md#2]: proj two\n")
	assert.NotContains(t, model.lastSystem, "{context}", "placeholder must be substituted")
	require.Len(t, answer.Projects, 1)
	assert.Equal(t, "A", answer.Projects[0].Name)
}

func TestStuffDocumentsChainCustomDocumentTemplate(t *testing.T) {
	model := &stubModel{structured: ProjectsAnswer{}}
	chain, err := NewStuffDocumentsChain(model, "{context}", ProjectsSchema(),
		WithDocumentTemplate("{page_content}"), WithDocumentSeparator("\n---\n"))
	require.NoError(t, err)

	docs := []store.Document{
		{PageContent: "one"},
		{PageContent: "two"},
	}
	var answer ProjectsAnswer
	require.NoError(t, chain.Invoke(context.Background(), ChainInput{Input: "q", Context: docs}, &answer))
	assert.Equal(t, "one\n---\ntwo", model.lastSystem)
}
