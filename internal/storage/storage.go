package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned when the object does not exist
var ErrNotFound = errors.New("storage: object not found")

// Storage keeps staged files until they are uploaded to the API
type Storage interface {
	// Save stores the object and returns the number of bytes written
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (int64, error)

	// Open returns a reader for the object
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object, a missing object is not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if the object exists
	Exists(ctx context.Context, key string) (bool, error)

	// Size returns the size of the object in bytes
	Size(ctx context.Context, key string) (int64, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // For local storage
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
