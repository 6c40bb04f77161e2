package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// transformation limits incoming images to 1200x800 without upscaling.
const transformation = "c_limit,w_1200,h_800"

// CloudinaryUploader implements Uploader against the Cloudinary API.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryUploader creates an uploader from account credentials.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryUploader{client: client}, nil
}

// Upload stores one image under folder, applying the fixed resize
// transformation. The format allow-list is enforced locally before any
// bytes leave the process.
func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader, folder, filename string) (*Asset, error) {
	if err := CheckFormat(filename); err != nil {
		return nil, err
	}

	result, err := u.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         folder,
		AllowedFormats: api.CldAPIArray{"jpg", "jpeg", "png", "gif", "webp"},
		Transformation: transformation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}

	return &Asset{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Format:   result.Format,
		Bytes:    int64(result.Bytes),
	}, nil
}

// Destroy deletes the asset with the given public ID.
func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	result, err := u.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to destroy asset: %w", err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("failed to destroy asset %s: %s", publicID, result.Result)
	}
	return nil
}
