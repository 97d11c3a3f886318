package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// GeminiModel implements ChatModel on top of the Gemini API.
type GeminiModel struct {
	client    *genai.Client
	modelName string
}

func NewGeminiModel(client *genai.Client, modelName string) *GeminiModel {
	return &GeminiModel{client: client, modelName: modelName}
}

func (m *GeminiModel) newGenerativeModel(system string) *genai.GenerativeModel {
	model := m.client.GenerativeModel(m.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}
	temp := float32(samplingTemperature)
	model.GenerationConfig = genai.GenerationConfig{Temperature: &temp}
	return model
}

func (m *GeminiModel) Generate(ctx context.Context, system, user string) (string, error) {
	model := m.newGenerativeModel(system)

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini generate request failed: %w", err)
	}
	return collectText(resp)
}

func (m *GeminiModel) GenerateStructured(ctx context.Context, system, user string, schema *Schema, out any) error {
	model := m.newGenerativeModel(system)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = toGenaiSchema(schema.Root)

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return fmt.Errorf("gemini structured request failed: %w", err)
	}
	text, err := collectText(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("gemini returned a payload that does not match schema %q: %w", schema.Name, err)
	}
	return nil
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response was empty or had no valid candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini response contained no text parts")
	}
	return text.String(), nil
}

func toGenaiSchema(node *SchemaNode) *genai.Schema {
	if node == nil {
		return nil
	}

	s := &genai.Schema{
		Description: node.Description,
		Required:    node.Required,
		Items:       toGenaiSchema(node.Items),
	}
	switch node.Type {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	default:
		s.Type = genai.TypeString
	}
	if len(node.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(node.Properties))
		for name, prop := range node.Properties {
			s.Properties[name] = toGenaiSchema(prop)
		}
	}
	return s
}

// GeminiEmbedder computes embeddings with the Gemini embeddings service.
type GeminiEmbedder struct {
	client    *genai.Client
	modelName string
}

func NewGeminiEmbedder(client *genai.Client, modelName string) *GeminiEmbedder {
	return &GeminiEmbedder{client: client, modelName: modelName}
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	em := e.client.EmbeddingModel(e.modelName)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding request failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding data received from gemini")
	}
	return res.Embedding.Values, nil
}
