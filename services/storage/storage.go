package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the service from account credentials.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorage{cld: cld}, nil
}

// UploadImage uploads an image into destFolder and returns its HTTPS URL.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, localFilePath, destFolder string) (Asset, error) {
	params := uploader.UploadParams{
		Folder:       destFolder,
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, localFilePath, params)
	if err != nil {
		return Asset{}, fmt.Errorf("CloudinaryStorage: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return Asset{}, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" || result.SecureURL == "" {
		return Asset{}, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return Asset{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete file: %w", err)
	}
	return nil
}
