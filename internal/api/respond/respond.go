// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the standard error shape for all API errors. The error
// field is always present; details only when there is something to add.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON marshals a Go value and writes it with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Raw writes pre-encoded JSON bytes verbatim. Used by the passthrough
// handlers, which never re-encode upstream payloads.
func Raw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// Error sends a JSON error body with a stable error field.
func Error(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	JSON(w, status, ErrorResponse{Error: message})
}

// ErrorDetail sends a JSON error body with additional detail.
func ErrorDetail(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	JSON(w, status, ErrorResponse{Error: message, Details: details})
}
