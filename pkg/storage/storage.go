// Package storage defines where published profiles are written. Backends are
// the local filesystem and S3-compatible object storage (AWS S3, Aliyun OSS, MinIO).
package storage

import (
	"context"
	"io"
	"io/fs"
)

// ErrObjectNotFound is matched by GetObject errors for missing keys.
var ErrObjectNotFound = fs.ErrNotExist

// Storage defines the interface for object storage operations.
type Storage interface {
	// PutObject uploads an object.
	// key: object key in format "{profileKey}/{fileName}"
	PutObject(ctx context.Context, key string, data io.Reader, contentType string, size int64) error

	// GetObject retrieves an object. The caller closes the returned reader.
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)

	// DeleteObject removes an object. Missing objects are not an error.
	DeleteObject(ctx context.Context, key string) error

	ObjectExists(ctx context.Context, key string) (bool, error)

	// GenerateURL creates an access URL for the object.
	// For local storage: returns API path like /api/v1/published/{profileKey}/{fileName}
	// For S3 with presigned mode: returns a presigned URL
	// For S3 with proxy mode: returns API path
	GenerateURL(ctx context.Context, key string, fileName string) (string, error)

	// Type returns the storage type identifier ("local" or "s3").
	Type() string
}
