package core

import (
	"context"
	"fmt"
	"strings"

	"kainos.com/bid-assist/internal/store"
)

const (
	defaultDocumentTemplate  = "[{source}]: {page_content}\n"
	defaultDocumentSeparator = "\n\n"
)

// FormatDocuments renders each document through the template and joins
// the results with the separator. Documents are rendered independently,
// in input order; an empty input yields an empty string. The template
// may reference {page_content} and any metadata key as {key}.
func FormatDocuments(docs []store.Document, template, separator string) string {
	if len(docs) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(docs))
	for _, doc := range docs {
		pairs := make([]string, 0, 2*(len(doc.Metadata)+1))
		for key, value := range doc.Metadata {
			pairs = append(pairs, "{"+key+"}", value)
		}
		pairs = append(pairs, "{page_content}", doc.PageContent)
		rendered = append(rendered, strings.NewReplacer(pairs...).Replace(template))
	}
	return strings.Join(rendered, separator)
}

// StuffDocumentsChain stuffs retrieved documents verbatim into the
// {context} slot of a prompt and invokes the model with a declared
// output schema. It does not retrieve documents itself; the caller
// passes them in.
type StuffDocumentsChain struct {
	model             ChatModel
	prompt            string
	schema            *Schema
	documentTemplate  string
	documentSeparator string
}

type ChainOption func(*StuffDocumentsChain)

func WithDocumentTemplate(template string) ChainOption {
	return func(c *StuffDocumentsChain) { c.documentTemplate = template }
}

func WithDocumentSeparator(separator string) ChainOption {
	return func(c *StuffDocumentsChain) { c.documentSeparator = separator }
}

// NewStuffDocumentsChain builds the chain. A prompt without a {context}
// placeholder is a configuration error and fails here, never at
// invocation time.
func NewStuffDocumentsChain(model ChatModel, prompt string, schema *Schema, opts ...ChainOption) (*StuffDocumentsChain, error) {
	if !strings.Contains(prompt, "{context}") {
		return nil, fmt.Errorf(`prompt must include a "context" variable`)
	}

	c := &StuffDocumentsChain{
		model:             model,
		prompt:            prompt,
		schema:            schema,
		documentTemplate:  defaultDocumentTemplate,
		documentSeparator: defaultDocumentSeparator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type ChainInput struct {
	Input   string
	Context []store.Document
}

// Invoke runs the three stages in order: format the documents into the
// {context} slot, render the full prompt, invoke the model requesting
// structured output. The parsed result is written to out unmodified.
func (c *StuffDocumentsChain) Invoke(ctx context.Context, in ChainInput, out any) error {
	formatted := FormatDocuments(in.Context, c.documentTemplate, c.documentSeparator)
	system := strings.ReplaceAll(c.prompt, "{context}", formatted)
	return c.model.GenerateStructured(ctx, system, in.Input, c.schema, out)
}
