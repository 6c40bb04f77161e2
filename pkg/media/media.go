// Package media handles image storage at the external media provider.
// Uploads return a durable URL that gets embedded in the persisted
// record; deletions are best-effort and never surfaced to callers.
package media

import (
	"context"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/apperrors"
)

// Upload folders, one per purpose. All live under the escotech
// namespace at the provider.
const (
	FolderProjects = "escotech/projects"
	FolderTeam     = "escotech/team"
	FolderServices = "escotech/services"
	FolderGeneral  = "escotech/general"
)

// allowedFormats is the image extension allow-list, matching the
// provider-side allowed_formats setting.
var allowedFormats = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Asset describes a stored image.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Format   string `json:"format,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

// Uploader stores and deletes images at the media provider.
type Uploader interface {
	// Upload stores one image under the given folder. The filename is
	// only used for format checking; the provider assigns the public ID.
	Upload(ctx context.Context, r io.Reader, folder, filename string) (*Asset, error)
	// Destroy deletes the asset with the given public ID.
	Destroy(ctx context.Context, publicID string) error
}

// AllowedFormat reports whether the filename carries an accepted image
// extension.
func AllowedFormat(filename string) bool {
	return allowedFormats[strings.ToLower(path.Ext(filename))]
}

// CheckFormat returns ErrUnsupportedFmt for filenames outside the
// allow-list.
func CheckFormat(filename string) error {
	if !AllowedFormat(filename) {
		return apperrors.ErrUnsupportedFmt
	}
	return nil
}

// PublicIDFromURL extracts the provider's asset identifier from a
// durable URL. Shape:
//
//	https://res.cloudinary.com/<cloud>/image/upload/v123/escotech/projects/abc.jpg
//
// yields "escotech/projects/abc". Returns "" when the URL does not
// follow the convention.
func PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	// The segment after "upload" is the version (vNNN); the public ID
	// is everything after that, minus the extension.
	if uploadIdx == -1 || uploadIdx+2 >= len(parts) {
		return ""
	}

	publicID := strings.Join(parts[uploadIdx+2:], "/")
	if ext := path.Ext(publicID); ext != "" {
		publicID = strings.TrimSuffix(publicID, ext)
	}
	return publicID
}

// BestEffortDestroy attempts to delete the asset behind a durable URL
// exactly once. Failures are logged and swallowed - callers get no
// signal, so a failed deletion leaves an orphaned remote asset. Known
// reconciliation gap, kept deliberately.
func BestEffortDestroy(ctx context.Context, uploader Uploader, url string, logger *zap.Logger) {
	publicID := PublicIDFromURL(url)
	if publicID == "" {
		return
	}

	if err := uploader.Destroy(ctx, publicID); err != nil {
		logger.Warn("Failed to delete image from media provider",
			zap.String("public_id", publicID),
			zap.Error(err))
		return
	}

	logger.Info("Image deleted", zap.String("public_id", publicID))
}
