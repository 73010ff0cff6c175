package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrObjectNotFound возвращается из Get, когда объекта по пути нет
var ErrObjectNotFound = errors.New("object not found")

// Storage defines the interface for document storage operations
type Storage interface {
	// Save stores a file at the given path, replacing any previous content
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path; missing files yield ErrObjectNotFound
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if a file exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// Location describes where the path lives (file path or bucket URL), for logs
	Location(path string) string
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
	UseSSL    bool   // For custom S3 endpoints
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
