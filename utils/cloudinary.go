package utils

import (
	"fmt"

	"freelancehub/config"
	"freelancehub/services/storage"
)

// Cloudinary builds the image StorageService from the loaded configuration.
// It fails when any credential is missing, which callers treat as "uploads
// disabled".
func Cloudinary() (storage.StorageService, error) {
	cfg := config.AppConfig
	svc, err := storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: %w", err)
	}
	return svc, nil
}
