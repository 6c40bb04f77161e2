package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/media"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/repositories"
	"github.com/escotech/escotech-api/pkg/validation"
)

// teamFormFields are the multipart fields carried by team member
// create and update requests, alongside the photo file.
var teamFormFields = []string{"name", "role", "description", "order", "isCEO"}

// TeamHandler handles team member requests. Reads are public;
// mutations require an admin credential and arrive as multipart forms.
type TeamHandler struct {
	team     repositories.TeamMemberRepository
	uploader media.Uploader
	logger   *zap.Logger
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(team repositories.TeamMemberRepository, uploader media.Uploader, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{team: team, uploader: uploader, logger: logger}
}

// RegisterRoutes registers the team handler's routes on the given mux.
func (h *TeamHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/team", h.List)
	mux.HandleFunc("GET /api/team/{id}", h.Get)
	mux.HandleFunc("POST /api/team", authMiddleware.RequireAdmin(h.Create))
	mux.HandleFunc("PUT /api/team/{id}", authMiddleware.RequireAdmin(h.Update))
	mux.HandleFunc("DELETE /api/team/{id}", authMiddleware.RequireAdmin(h.Delete))
}

// List handles GET /api/team. The CEO record sorts first, then display
// order.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.Find(r.Context())
	if err != nil {
		h.logger.Error("Failed to list team members", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch team members")
		return
	}

	_ = writeList(w, len(members), members)
}

// Get handles GET /api/team/{id}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Team member not found")
		return
	}

	member, err := h.team.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Team member not found")
			return
		}
		h.logger.Error("Failed to get team member", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch team member")
		return
	}

	_ = writeData(w, http.StatusOK, member)
}

// Create handles POST /api/team. The photo is checked before the field
// rules run, same as project creation.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Image is required")
		return
	}
	defer file.Close()

	payload := formPayload(r, teamFormFields...)
	if failures := validation.Run(payload, validation.TeamMemberRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	if err := media.CheckFormat(header.Filename); err != nil {
		_ = writeError(w, http.StatusBadRequest, unsupportedFormatMessage)
		return
	}

	asset, err := h.uploader.Upload(r.Context(), file, media.FolderTeam, header.Filename)
	if err != nil {
		h.logger.Error("Failed to upload team member image", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	member := &models.TeamMember{
		Name:        payloadString(payload, "name"),
		Role:        payloadString(payload, "role"),
		Description: payloadString(payload, "description"),
		Image:       asset.URL,
		Order:       payloadInt(payload, "order", 0),
		IsCEO:       payloadBool(payload, "isCEO"),
	}

	if err := h.team.Create(r.Context(), member); err != nil {
		h.logger.Error("Failed to create team member", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to create team member")
		return
	}

	h.logger.Info("Team member created", zap.Int64("id", member.ID))
	_ = writeData(w, http.StatusCreated, member)
}

// Update handles PUT /api/team/{id}. Partial semantics: omitted and
// empty text fields keep their stored values; order and isCEO apply
// only when present.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Team member not found")
		return
	}

	member, err := h.team.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Team member not found")
			return
		}
		h.logger.Error("Failed to get team member", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch team member")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	payload := formPayload(r, teamFormFields...)
	if v := payloadString(payload, "name"); v != "" {
		member.Name = v
	}
	if v := payloadString(payload, "role"); v != "" {
		member.Role = v
	}
	if v := payloadString(payload, "description"); v != "" {
		member.Description = v
	}
	if _, ok := payload["order"]; ok {
		member.Order = payloadInt(payload, "order", member.Order)
	}
	if _, ok := payload["isCEO"]; ok {
		member.IsCEO = payloadBool(payload, "isCEO")
	}

	oldImage := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()

		if err := media.CheckFormat(header.Filename); err != nil {
			_ = writeError(w, http.StatusBadRequest, unsupportedFormatMessage)
			return
		}

		asset, err := h.uploader.Upload(r.Context(), file, media.FolderTeam, header.Filename)
		if err != nil {
			h.logger.Error("Failed to upload team member image", zap.Int64("id", id), zap.Error(err))
			_ = writeError(w, http.StatusInternalServerError, "Failed to upload image")
			return
		}

		oldImage = member.Image
		member.Image = asset.URL
	}

	if err := h.team.Update(r.Context(), member); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Team member not found")
			return
		}
		h.logger.Error("Failed to update team member", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to update team member")
		return
	}

	if oldImage != "" {
		media.BestEffortDestroy(r.Context(), h.uploader, oldImage, h.logger)
	}

	_ = writeData(w, http.StatusOK, member)
}

// Delete handles DELETE /api/team/{id}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Team member not found")
		return
	}

	member, err := h.team.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Team member not found")
			return
		}
		h.logger.Error("Failed to get team member", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch team member")
		return
	}

	media.BestEffortDestroy(r.Context(), h.uploader, member.Image, h.logger)

	if err := h.team.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Team member not found")
			return
		}
		h.logger.Error("Failed to delete team member", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to delete team member")
		return
	}

	_ = writeMessage(w, http.StatusOK, "Team member deleted successfully")
}
