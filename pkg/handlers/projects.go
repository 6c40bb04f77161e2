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

// unsupportedFormatMessage rejects files outside the image allow-list.
const unsupportedFormatMessage = "Only image files (jpg, jpeg, png, gif, webp) are allowed"

// projectFormFields are the multipart fields carried by project create
// and update requests, alongside the image file.
var projectFormFields = []string{"title", "description", "category", "location", "featured"}

// ProjectsHandler handles portfolio project requests. Reads are public;
// mutations require an admin credential and arrive as multipart forms
// because they may carry an image file.
type ProjectsHandler struct {
	projects repositories.ProjectRepository
	uploader media.Uploader
	logger   *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projects repositories.ProjectRepository, uploader media.Uploader, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, uploader: uploader, logger: logger}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/projects", h.List)
	mux.HandleFunc("GET /api/projects/{id}", h.Get)
	mux.HandleFunc("POST /api/projects", authMiddleware.RequireAdmin(h.Create))
	mux.HandleFunc("PUT /api/projects/{id}", authMiddleware.RequireAdmin(h.Update))
	mux.HandleFunc("DELETE /api/projects/{id}", authMiddleware.RequireAdmin(h.Delete))
}

// List handles GET /api/projects. Unknown category values and any
// featured value other than the literal "true" are ignored rather than
// rejected, so a bad query string degrades to the unfiltered listing.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProjectFilter{
		Category: r.URL.Query().Get("category"),
		Featured: r.URL.Query().Get("featured") == "true",
	}
	if !models.ValidCategory(filter.Category) {
		filter.Category = ""
	}

	projects, err := h.projects.Find(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}

	_ = writeList(w, len(projects), projects)
}

// Get handles GET /api/projects/{id}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.projects.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("Failed to get project", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	_ = writeData(w, http.StatusOK, project)
}

// Create handles POST /api/projects. The image file is checked before
// the field rules run, so a request missing both gets the image error.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	payload := formPayload(r, projectFormFields...)
	if failures := validation.Run(payload, validation.ProjectRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	if err := media.CheckFormat(header.Filename); err != nil {
		_ = writeError(w, http.StatusBadRequest, unsupportedFormatMessage)
		return
	}

	asset, err := h.uploader.Upload(r.Context(), file, media.FolderProjects, header.Filename)
	if err != nil {
		h.logger.Error("Failed to upload project image", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	project := &models.Project{
		Title:       payloadString(payload, "title"),
		Description: payloadString(payload, "description"),
		Category:    payloadString(payload, "category"),
		Location:    payloadString(payload, "location"),
		Image:       asset.URL,
		Featured:    payloadBool(payload, "featured"),
	}

	if err := h.projects.Create(r.Context(), project); err != nil {
		h.logger.Error("Failed to create project", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	h.logger.Info("Project created", zap.Int64("id", project.ID))
	_ = writeData(w, http.StatusCreated, project)
}

// Update handles PUT /api/projects/{id}. Updates are partial: omitted
// and empty fields keep their stored values, and a new image replaces
// the old one at the media provider after the row is written.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.projects.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("Failed to get project", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	payload := formPayload(r, projectFormFields...)
	if v := payloadString(payload, "title"); v != "" {
		project.Title = v
	}
	if v := payloadString(payload, "description"); v != "" {
		project.Description = v
	}
	if v := payloadString(payload, "category"); v != "" {
		project.Category = v
	}
	if v := payloadString(payload, "location"); v != "" {
		project.Location = v
	}
	if _, ok := payload["featured"]; ok {
		project.Featured = payloadBool(payload, "featured")
	}

	oldImage := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()

		if err := media.CheckFormat(header.Filename); err != nil {
			_ = writeError(w, http.StatusBadRequest, unsupportedFormatMessage)
			return
		}

		asset, err := h.uploader.Upload(r.Context(), file, media.FolderProjects, header.Filename)
		if err != nil {
			h.logger.Error("Failed to upload project image", zap.Int64("id", id), zap.Error(err))
			_ = writeError(w, http.StatusInternalServerError, "Failed to upload image")
			return
		}

		oldImage = project.Image
		project.Image = asset.URL
	}

	if err := h.projects.Update(r.Context(), project); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("Failed to update project", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	if oldImage != "" {
		media.BestEffortDestroy(r.Context(), h.uploader, oldImage, h.logger)
	}

	_ = writeData(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{id}. The remote image is
// destroyed best-effort before the row goes away.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		_ = writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.projects.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("Failed to get project", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	media.BestEffortDestroy(r.Context(), h.uploader, project.Image, h.logger)

	if err := h.projects.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("Failed to delete project", zap.Int64("id", id), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	_ = writeMessage(w, http.StatusOK, "Project deleted successfully")
}
