package server

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error      string `json:"error"`
	RetryAfter string `json:"retry_after,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeErrorRetryAfter(w http.ResponseWriter, status int, message, retryAfter string) {
	w.Header().Set("Retry-After", retryAfter)
	writeJSON(w, status, errorBody{Error: message, RetryAfter: retryAfter})
}
