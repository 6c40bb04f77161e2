package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Middleware gates admin-only routes. It delegates credential checks to
// Service and attaches the resolved admin to the request context.
type Middleware struct {
	service *Service
	logger  *zap.Logger
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(service *Service, logger *zap.Logger) *Middleware {
	return &Middleware{service: service, logger: logger}
}

// RequireAdmin verifies the bearer credential and resolves it to a live
// admin before invoking next. On any failure it responds 401 and the
// downstream handler never runs.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := m.service.Authenticate(r)
		if err != nil {
			m.unauthorized(w, authFailureMessage(err))
			return
		}

		next(w, r.WithContext(WithAdmin(r.Context(), admin)))
	}
}

// authFailureMessage keeps the original API's per-case 401 texts.
func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoToken):
		return "Not authorized, no token provided"
	case errors.Is(err, ErrAdminGone):
		return "Not authorized, admin not found"
	default:
		return "Not authorized, invalid token"
	}
}

// unauthorized returns a 401 response in the API envelope shape.
func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	}); err != nil {
		m.logger.Error("Failed to write unauthorized response", zap.Error(err))
	}
}
