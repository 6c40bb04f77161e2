package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/mailer"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/repositories"
	"github.com/escotech/escotech-api/pkg/validation"
)

// contactReceivedMessage is echoed back to the public site after a
// successful submission.
const contactReceivedMessage = "Thank you for contacting us. We will get back to you soon."

// ContactHandler handles public contact form submissions.
type ContactHandler struct {
	messages repositories.MessageRepository
	mail     mailer.Mailer
	logger   *zap.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(messages repositories.MessageRepository, mail mailer.Mailer, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{messages: messages, mail: mail, logger: logger}
}

// RegisterRoutes registers the contact handler's routes on the given
// mux. Submission is the only public mutation in the API.
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/contact", h.Submit)
}

// Submit handles POST /api/contact. The message is persisted first;
// the notification e-mail is best-effort and a failed send never turns
// into a request failure.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeJSON(r)
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if failures := validation.Run(payload, validation.ContactRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	message := &models.Message{
		FullName: payloadString(payload, "fullName"),
		Email:    payloadString(payload, "email"),
		Phone:    payloadString(payload, "phone"),
		Message:  payloadString(payload, "message"),
	}

	if err := h.messages.Create(r.Context(), message); err != nil {
		h.logger.Error("Failed to save contact message", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	if err := h.mail.SendContactNotification(mailer.ContactData{
		FullName: message.FullName,
		Email:    message.Email,
		Phone:    message.Phone,
		Message:  message.Message,
	}); err != nil {
		h.logger.Warn("Failed to send contact notification",
			zap.Int64("message_id", message.ID),
			zap.Error(err))
	}

	_ = WriteJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: contactReceivedMessage,
		Data:    map[string]int64{"id": message.ID},
	})
}
