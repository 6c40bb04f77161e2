package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/escotech/escotech-api/pkg/validation"
)

// Envelope is the uniform response wrapper:
// {success, data?, message?, count?, errors?}.
type Envelope struct {
	Success bool                    `json:"success"`
	Count   *int                    `json:"count,omitempty"`
	Data    any                     `json:"data,omitempty"`
	Message string                  `json:"message,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(v)
}

// writeData writes a success envelope carrying data.
func writeData(w http.ResponseWriter, statusCode int, data any) error {
	return WriteJSON(w, statusCode, Envelope{Success: true, Data: data})
}

// writeList writes a success envelope carrying a collection and its count.
func writeList(w http.ResponseWriter, count int, data any) error {
	return WriteJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// writeMessage writes a success envelope carrying only a message.
func writeMessage(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, Envelope{Success: true, Message: message})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, Envelope{Success: false, Message: message})
}

// writeValidationErrors writes a 400 envelope enumerating every failing
// field.
func writeValidationErrors(w http.ResponseWriter, failures []validation.FieldError) error {
	return WriteJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  failures,
	})
}

// NotFoundHandler is the fallback for unrouted paths.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeError(w, http.StatusNotFound, fmt.Sprintf("Route %s not found", r.URL.Path))
}
