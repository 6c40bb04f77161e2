package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.Health)
}

// Health handles GET /api/health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Success:   true,
		Message:   "ESCOtech API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
	}
}
