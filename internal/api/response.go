package api

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code and payload.
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
		// Can't write the header again here, just log the error
	}
}

func ok(w http.ResponseWriter, payload interface{}) {
	respondJSON(w, http.StatusOK, payload)
}

func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

func serviceUnavailable(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: message})
}
