package utils

import (
	"context"
	"io"
	"os"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/google/uuid"
)

// UploadedImage is the stable public reference a client stores after an
// upload; the URL is treated as an opaque string from then on.
type UploadedImage struct {
	ImageURL    string `json:"imageUrl"`
	StoragePath string `json:"storagePath"`
}

// UploadImage stores a property or avatar image on Cloudinary under a fresh
// uuid public id and returns its public URL.
func UploadImage(ctx context.Context, file io.Reader, folder string) (*UploadedImage, error) {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		return nil, err
	}

	publicID := folder + "/" + uuid.NewString()
	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{PublicID: publicID})
	if err != nil {
		return nil, err
	}

	return &UploadedImage{
		ImageURL:    result.SecureURL,
		StoragePath: publicID,
	}, nil
}
