package libs

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"retail-hub/config"
)

// CloudinaryImageStore hosts product images on Cloudinary.
type CloudinaryImageStore struct {
	cld     *cloudinary.Cloudinary
	folder  string
	maxSize int64
	log     *zap.Logger
}

func NewCloudinaryImageStore(cfg *config.CloudinaryConfig, maxSize int64, log *zap.Logger) (*CloudinaryImageStore, error) {
	if !cfg.Enabled() {
		return nil, errors.New("cloudinary credentials not configured")
	}

	var cld *cloudinary.Cloudinary
	var err error
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryImageStore{cld: cld, folder: cfg.Folder, maxSize: maxSize, log: log}, nil
}

func (s *CloudinaryImageStore) Save(ctx context.Context, sku string, header *multipart.FileHeader) (string, error) {
	if err := ValidateImageFile(header, s.maxSize); err != nil {
		return "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       fmt.Sprintf("%s_%s", sku, uuid.NewString()),
		Folder:         s.folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	if resp.SecureURL != "" {
		s.log.Debug("image uploaded", zap.String("sku", sku), zap.String("public_id", resp.PublicID))
		return resp.SecureURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", errors.New("cloudinary returned no image url")
}
