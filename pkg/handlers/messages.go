package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/repositories"
	"github.com/escotech/escotech-api/pkg/validation"
)

// MessagesHandler handles the admin side of the contact inbox.
type MessagesHandler struct {
	messages repositories.MessageRepository
	logger   *zap.Logger
}

// NewMessagesHandler creates a new messages handler.
func NewMessagesHandler(messages repositories.MessageRepository, logger *zap.Logger) *MessagesHandler {
	return &MessagesHandler{messages: messages, logger: logger}
}

// RegisterRoutes registers the messages handler's routes on the given
// mux. Submissions arrive through the public /api/contact route; the
// inbox itself is admin-only.
func (h *MessagesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/messages", authMiddleware.RequireAdmin(h.List))
	mux.HandleFunc("GET /api/messages/{id}", authMiddleware.RequireAdmin(h.Get))
	mux.HandleFunc("PATCH /api/messages/{id}", authMiddleware.RequireAdmin(h.SetRead))
	mux.HandleFunc("DELETE /api/messages/{id}", authMiddleware.RequireAdmin(h.Delete))
}

// List handles GET /api/messages, newest first.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.Find(r.Context())
	if err != nil {
		h.logger.Error("Failed to list messages", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	_ = writeList(w, len(messages), messages)
}

// Get handles GET /api/messages/{id}.
func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	message, err := h.messages.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		h.logger.Error("Failed to get message", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch message")
		return
	}

	_ = writeData(w, http.StatusOK, message)
}

// SetRead handles PATCH /api/messages/{id}. The body carries the
// target flag so the same route marks both read and unread.
func (h *MessagesHandler) SetRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	payload, err := decodeJSON(r)
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if failures := validation.Run(payload, validation.MessageStatusRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	message, err := h.messages.SetRead(r.Context(), id, payloadBool(payload, "isRead"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		h.logger.Error("Failed to update message status", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}

	_ = writeData(w, http.StatusOK, message)
}

// Delete handles DELETE /api/messages/{id}.
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	if err := h.messages.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		h.logger.Error("Failed to delete message", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}

	_ = writeMessage(w, http.StatusOK, "Message deleted successfully")
}
