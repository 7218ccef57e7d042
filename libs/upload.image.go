package libs

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"retail-hub/models"
)

// PublicUploadPath is where locally stored images are served from.
const PublicUploadPath = "/uploads"

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageFile rejects non-image extensions and files over maxSize bytes.
func ValidateImageFile(header *multipart.FileHeader, maxSize int64) error {
	if header == nil {
		return models.NewValidationError("image", "is required")
	}
	if maxSize > 0 && header.Size > maxSize {
		return models.NewValidationError("image", fmt.Sprintf("file too large (max %d bytes)", maxSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return models.NewValidationError("image", "only .jpg, .jpeg, .png, .gif and .webp are allowed")
	}
	return nil
}

// LocalImageStore saves product images under a directory on disk. It is used
// when no Cloudinary account is configured.
type LocalImageStore struct {
	dir     string
	maxSize int64
}

func NewLocalImageStore(dir string, maxSize int64) *LocalImageStore {
	return &LocalImageStore{dir: dir, maxSize: maxSize}
}

func (s *LocalImageStore) Save(ctx context.Context, sku string, header *multipart.FileHeader) (string, error) {
	if err := ValidateImageFile(header, s.maxSize); err != nil {
		return "", err
	}

	folder := filepath.Join(s.dir, "products")
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("%s_%s%s", sku, uuid.NewString(), ext)

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(folder, filename))
	if err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return path.Join(PublicUploadPath, "products", filename), nil
}
