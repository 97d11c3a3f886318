package core

import "context"

// samplingTemperature is used by every chat model in both backends.
// 0 = deterministic, 1 = maximum randomness.
const samplingTemperature = 0.7

// ChatModel is the LLM boundary. Generate returns free text for a
// system prompt plus one user message; GenerateStructured constrains
// the response to the given schema and decodes it into out.
type ChatModel interface {
	Generate(ctx context.Context, system, user string) (string, error)
	GenerateStructured(ctx context.Context, system, user string, schema *Schema, out any) error
}

// Schema declares the shape of a structured model response in a
// backend-neutral form. Each backend translates it into whatever its
// API expects.
type Schema struct {
	Name        string
	Description string
	Root        *SchemaNode
}

// SchemaNode is one node of a declared output schema. Only the subset
// of JSON Schema the service needs is modeled.
type SchemaNode struct {
	Type        string                 `json:"type"` // "object", "array" or "string"
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*SchemaNode `json:"properties,omitempty"`
	Items       *SchemaNode            `json:"items,omitempty"`
	Required    []string               `json:"required,omitempty"`
}
