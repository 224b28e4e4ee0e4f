package helpers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader pushes portfolio media to Cloudinary and returns the
// secure URLs in input order.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, folder: folder}
}

// Upload accepts local paths, remote URLs or data URIs. Blank references are skipped.
func (u *CloudinaryUploader) Upload(ctx context.Context, refs []string) ([]string, error) {
	var urls []string
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		res, err := u.cld.Upload.Upload(ctx, ref, uploader.UploadParams{
			Folder: u.folder,
			Tags:   []string{"portfolio"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", ref, err)
		}
		if res.Error.Message != "" {
			return nil, fmt.Errorf("failed to upload %s: %s", ref, res.Error.Message)
		}
		urls = append(urls, res.SecureURL)
	}
	return urls, nil
}
