// Package storage provides a domain-agnostic interface for S3-compatible
// object storage backing entity images and documents.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned upload/download operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service defines the interface for object storage operations.
type Service interface {
	// UploadObject stores a file from an io.Reader and returns the object key.
	// The folder parameter defines the path prefix (e.g. "provider/{id}").
	UploadObject(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)

	// PresignDownload creates a time-limited URL for downloading an object.
	PresignDownload(ctx context.Context, bucket, objectKey string) (*PresignedURL, error)

	// OpenObject streams an object from storage.
	// The caller is responsible for closing the returned io.ReadCloser.
	OpenObject(ctx context.Context, bucket, objectKey string) (io.ReadCloser, error)

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, bucket, objectKey string) error

	// EnsureBucket creates the bucket if it doesn't exist.
	EnsureBucket(ctx context.Context, bucket string) error

	// ValidateContentType checks if the content type is allowed.
	ValidateContentType(contentType string) error

	// ValidateFileSize checks if the file size is within limits.
	ValidateFileSize(sizeBytes int64) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
