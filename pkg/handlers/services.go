package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/repositories"
	"github.com/escotech/escotech-api/pkg/validation"
)

// ServicesHandler handles company service requests. Services carry no
// image, so unlike projects and team this is plain JSON throughout.
type ServicesHandler struct {
	services repositories.ServiceRepository
	logger   *zap.Logger
}

// NewServicesHandler creates a new services handler.
func NewServicesHandler(services repositories.ServiceRepository, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{services: services, logger: logger}
}

// RegisterRoutes registers the services handler's routes on the given mux.
func (h *ServicesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/services", h.List)
	mux.HandleFunc("GET /api/services/{id}", h.Get)
	mux.HandleFunc("POST /api/services", authMiddleware.RequireAdmin(h.Create))
	mux.HandleFunc("PUT /api/services/{id}", authMiddleware.RequireAdmin(h.Update))
	mux.HandleFunc("DELETE /api/services/{id}", authMiddleware.RequireAdmin(h.Delete))
}

// List handles GET /api/services, in display order.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.Find(r.Context())
	if err != nil {
		h.logger.Error("Failed to list services", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	_ = writeList(w, len(services), services)
}

// Get handles GET /api/services/{id}.
func (h *ServicesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Service not found")
		return
	}

	service, err := h.services.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Failed to get service", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch service")
		return
	}

	_ = writeData(w, http.StatusOK, service)
}

// Create handles POST /api/services.
func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeJSON(r)
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if failures := validation.Run(payload, validation.ServiceRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	service := &models.Service{
		Title:       payloadString(payload, "title"),
		Description: payloadString(payload, "description"),
		Features:    payloadStrings(payload, "features"),
		Icon:        payloadString(payload, "icon"),
		Order:       payloadInt(payload, "order", 0),
	}

	if err := h.services.Create(r.Context(), service); err != nil {
		h.logger.Error("Failed to create service", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	h.logger.Info("Service created", zap.Int64("id", service.ID))
	_ = writeData(w, http.StatusCreated, service)
}

// Update handles PUT /api/services/{id}. Unlike project and team
// updates this is a full replacement, so the complete payload is
// validated against the same rules as create.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Service not found")
		return
	}

	payload, err := decodeJSON(r)
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if failures := validation.Run(payload, validation.ServiceRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	service, err := h.services.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Failed to get service", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch service")
		return
	}

	service.Title = payloadString(payload, "title")
	service.Description = payloadString(payload, "description")
	service.Features = payloadStrings(payload, "features")
	service.Icon = payloadString(payload, "icon")
	service.Order = payloadInt(payload, "order", 0)

	if err := h.services.Update(r.Context(), service); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Failed to update service", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	_ = writeData(w, http.StatusOK, service)
}

// Delete handles DELETE /api/services/{id}.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Service not found")
		return
	}

	if err := h.services.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		h.logger.Error("Failed to delete service", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	_ = writeMessage(w, http.StatusOK, "Service deleted successfully")
}
