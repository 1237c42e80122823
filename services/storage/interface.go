package storage

import "context"

// StorageService stores uploaded images and hands back a stable URL.
type StorageService interface {
	UploadImage(ctx context.Context, localFilePath, destFolder string) (Asset, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// Asset identifies an uploaded file.
type Asset struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}
