package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/escotech/escotech-api/pkg/validation"
)

// testEnvelope mirrors Envelope for decoding responses in tests.
type testEnvelope struct {
	Success bool                    `json:"success"`
	Count   *int                    `json:"count"`
	Data    json.RawMessage         `json:"data"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a multipart form request. An empty filename
// means no file part.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, filename string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", field, err)
		}
	}

	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// hasFieldError reports whether failures contains an entry for field.
func hasFieldError(failures []validation.FieldError, field string) bool {
	for _, f := range failures {
		if f.Field == field {
			return true
		}
	}
	return false
}

// assertErrorFields fails the test unless every named field appears in
// the validation errors.
func assertErrorFields(t *testing.T, env testEnvelope, fields ...string) {
	t.Helper()
	if env.Message != "Validation failed" {
		t.Errorf("expected message 'Validation failed', got %q", env.Message)
	}
	for _, field := range fields {
		if !hasFieldError(env.Errors, field) {
			t.Errorf("expected validation error for field %q, got %v", field, env.Errors)
		}
	}
}
