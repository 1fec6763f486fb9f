// Package minio provides a MinIO/S3-compatible document store implementing
// platform.Platform.
package minio

import (
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
)

const minPartSize = 5 * 1024 * 1024

// Config holds MinIO store configuration.
type Config struct {
	// Endpoint is the MinIO server URL (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the S3 bucket name
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Prefix is an optional prefix for all object keys (for namespacing).
	// It becomes part of the document directory URI.
	Prefix string

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored
	Client *minio.Client

	// MultipartThreshold is the part size used for multipart uploads
	// Default: 5MB (MinIO SDK minimum)
	MultipartThreshold int64

	// MaxRenameConcurrency limits concurrent copies during directory move
	// and copy
	// Default: 10
	MaxRenameConcurrency int

	// Logger receives debug logs for bulk operations. Nil discards them.
	Logger *slog.Logger
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + Bucket + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if c.MultipartThreshold != 0 && c.MultipartThreshold < minPartSize {
		return fmt.Errorf("multipart threshold must be at least %d bytes", minPartSize)
	}
	if c.MaxRenameConcurrency < 0 {
		return fmt.Errorf("max rename concurrency must not be negative")
	}

	// If Client is provided, we're done (other fields are ignored)
	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required when client is not provided")
	}

	return nil
}
