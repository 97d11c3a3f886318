package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"kainos.com/bid-assist/internal/auth"
	"kainos.com/bid-assist/internal/core"
)

const (
	// Number of documents retrieved for the identify-projects flow.
	numRetrievedDocuments = 3

	unavailableMessage    = "Service temporarily unavailable. Please try again later."
	invalidRequestMessage = "Invalid or missing messages in the request body"
)

// Provisioner is what the handlers need from the backend: a way to get
// a model and optional stores for one request.
type Provisioner interface {
	Provision(ctx context.Context, sessionID, userID string, opts core.ProvisionOptions) (*core.Resources, error)
}

type APIHandler struct {
	prov Provisioner
}

func NewAPIHandler(p Provisioner) *APIHandler {
	return &APIHandler{prov: p}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RequestContext is the recognized subset of the free-form request
// context; every other field is ignored.
type RequestContext struct {
	SessionID string `json:"sessionId"`
}

type ChatRequest struct {
	Messages []ChatMessage   `json:"messages"`
	Context  *RequestContext `json:"context,omitempty"`
}

type ChatResponse struct {
	Response interface{} `json:"response"`
}

// decodeChatRequest validates the payload and returns the last user
// message. A false return means the 400 response was already written
// and no model or store call may be made.
func decodeChatRequest(w http.ResponseWriter, r *http.Request) (*ChatRequest, string, bool) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, invalidRequestMessage)
		return nil, "", false
	}
	if len(req.Messages) == 0 || req.Messages[len(req.Messages)-1].Content == "" {
		badRequest(w, invalidRequestMessage)
		return nil, "", false
	}
	return &req, req.Messages[len(req.Messages)-1].Content, true
}

// sessionIDFrom uses the session id carried in the request context, or
// generates a fresh one when absent.
func sessionIDFrom(req *ChatRequest) string {
	if req.Context != nil && req.Context.SessionID != "" {
		return req.Context.SessionID
	}
	return uuid.NewString()
}

func (h *APIHandler) ElaborateHandler(w http.ResponseWriter, r *http.Request) {
	h.completion(w, r, "elaborate", core.ElaborateSystemPrompt)
}

func (h *APIHandler) SummariseHandler(w http.ResponseWriter, r *http.Request) {
	h.completion(w, r, "summarise", core.SummariseSystemPrompt)
}

// completion is the shared elaborate/summarise flow: a direct model
// call with a fixed system prompt, no retrieval.
func (h *APIHandler) completion(w http.ResponseWriter, r *http.Request, name, systemPrompt string) {
	req, question, valid := decodeChatRequest(w, r)
	if !valid {
		return
	}

	userID := auth.UserIDFromRequest(r)
	sessionID := sessionIDFrom(req)
	log.Printf("userId: %s, sessionId: %s", userID, sessionID)

	ctx := r.Context()
	res, err := h.prov.Provision(ctx, sessionID, userID, core.ProvisionOptions{})
	if err != nil {
		log.Printf("Error when processing %s request: %v", name, err)
		serviceUnavailable(w, unavailableMessage)
		return
	}

	answer, err := res.Model.Generate(ctx, systemPrompt, question)
	if err != nil {
		log.Printf("Error when processing %s request: %v", name, err)
		serviceUnavailable(w, unavailableMessage)
		return
	}

	ok(w, ChatResponse{Response: answer})
}

func (h *APIHandler) IdentifyProjectsHandler(w http.ResponseWriter, r *http.Request) {
	req, question, valid := decodeChatRequest(w, r)
	if !valid {
		return
	}

	userID := auth.UserIDFromRequest(r)
	sessionID := sessionIDFrom(req)
	log.Printf("userId: %s, sessionId: %s", userID, sessionID)

	ctx := r.Context()
	res, err := h.prov.Provision(ctx, sessionID, userID, core.ProvisionOptions{VectorStore: true})
	if err != nil {
		log.Printf("Error when processing identify-projects request: %v", err)
		serviceUnavailable(w, unavailableMessage)
		return
	}
	if res.Store == nil {
		log.Println("Error when processing identify-projects request: vector store must not be nil")
		serviceUnavailable(w, unavailableMessage)
		return
	}

	docs, err := res.Store.SimilaritySearch(ctx, question, numRetrievedDocuments)
	if err != nil {
		log.Printf("Error when processing identify-projects request: %v", err)
		serviceUnavailable(w, unavailableMessage)
		return
	}

	chain, err := core.NewStuffDocumentsChain(res.Model, core.RAGSystemPrompt, core.ProjectsSchema())
	if err != nil {
		log.Printf("Error when processing identify-projects request: %v", err)
		serviceUnavailable(w, unavailableMessage)
		return
	}

	var answer core.ProjectsAnswer
	if err := chain.Invoke(ctx, core.ChainInput{Input: question, Context: docs}, &answer); err != nil {
		log.Printf("Error when processing identify-projects request: %v", err)
		serviceUnavailable(w, unavailableMessage)
		return
	}

	ok(w, ChatResponse{Response: answer})
}
