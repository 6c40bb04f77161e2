package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/escotech/escotech-api/pkg/validation"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20

// errInvalidID is returned by pathID for malformed or non-positive IDs.
var errInvalidID = errors.New("invalid id")

// decodeJSON reads a JSON body into a field-value payload for the
// validation gate. An empty body yields an empty payload.
func decodeJSON(r *http.Request) (validation.Payload, error) {
	payload := validation.Payload{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, nil
		}
		return nil, err
	}
	return payload, nil
}

// formPayload builds a payload from the named multipart form fields.
// Only keys actually present in the form are included; values arrive
// as plain strings.
func formPayload(r *http.Request, fields ...string) validation.Payload {
	payload := validation.Payload{}
	if r.MultipartForm == nil {
		return payload
	}
	for _, field := range fields {
		if values, ok := r.MultipartForm.Value[field]; ok && len(values) > 0 {
			payload[field] = values[0]
		}
	}
	return payload
}

// pathID parses the {id} path parameter as a positive integer.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

// payloadString returns the trimmed string value of a payload field.
func payloadString(p validation.Payload, field string) string {
	if s, ok := p[field].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// payloadRawString returns the string value of a payload field with
// whitespace intact. Passwords must never be trimmed.
func payloadRawString(p validation.Payload, field string) string {
	s, _ := p[field].(string)
	return s
}

// payloadBool coerces a payload field to a boolean. Multipart forms
// carry booleans as strings; only the literal "true" counts.
func payloadBool(p validation.Payload, field string) bool {
	switch v := p[field].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// payloadInt coerces a payload field to an int, falling back to def.
func payloadInt(p validation.Payload, field string, def int) int {
	switch v := p[field].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// payloadStrings coerces a payload field to a string slice.
func payloadStrings(p validation.Payload, field string) []string {
	switch v := p[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return []string{}
}
