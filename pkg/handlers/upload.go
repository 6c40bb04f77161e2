package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/media"
)

// UploadResponse is the response for POST /api/upload.
type UploadResponse struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
}

// UploadHandler handles standalone image uploads, used by the admin UI
// for images that are not tied to a project or team member record.
type UploadHandler struct {
	uploader media.Uploader
	logger   *zap.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploader media.Uploader, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, logger: logger}
}

// RegisterRoutes registers the upload handler's routes on the given mux.
func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/upload", authMiddleware.RequireAdmin(h.Upload))
	mux.HandleFunc("DELETE /api/upload", authMiddleware.RequireAdmin(h.Delete))
}

// Upload handles POST /api/upload. The file lands in the general
// folder at the media provider.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if err := media.CheckFormat(header.Filename); err != nil {
		_ = writeError(w, http.StatusBadRequest, unsupportedFormatMessage)
		return
	}

	asset, err := h.uploader.Upload(r.Context(), file, media.FolderGeneral, header.Filename)
	if err != nil {
		h.logger.Error("Failed to upload image", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	_ = writeData(w, http.StatusCreated, UploadResponse{
		URL:          asset.URL,
		PublicID:     asset.PublicID,
		Filename:     asset.PublicID,
		OriginalName: header.Filename,
		Size:         header.Size,
		Mimetype:     header.Header.Get("Content-Type"),
	})
}

// Delete handles DELETE /api/upload. The body carries {imageUrl}; the
// destroy itself is best-effort and the route reports success even
// when the provider call fails, matching the redundant-delete
// tolerance of the media layer.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeJSON(r)
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	imageURL := payloadString(payload, "imageUrl")
	if imageURL == "" {
		_ = writeError(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	if media.PublicIDFromURL(imageURL) == "" {
		_ = writeError(w, http.StatusBadRequest, "Invalid image URL")
		return
	}

	media.BestEffortDestroy(r.Context(), h.uploader, imageURL, h.logger)

	_ = writeMessage(w, http.StatusOK, "Image deleted successfully")
}
