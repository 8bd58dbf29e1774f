// Package httpx holds small HTTP server helpers shared by the in-process
// API stub: the success/message response envelope and keyed rate limiting.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Result is the uniform response envelope: every JSON endpoint reports at
// least success, plus a human-readable message on failure.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes the bare success envelope.
func WriteSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, Result{Success: true})
}

// WriteFailure writes a failure envelope with a human-readable message.
func WriteFailure(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, Result{Success: false, Message: msg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for responses carrying codes or tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
