// Package local implements the local filesystem storage adapter.
package local

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Storage implements the storage.Storage interface using local filesystem.
type Storage struct {
	basePath string
}

// New creates a new local storage adapter.
// basePath is the root directory for published files (e.g., "data/profiles").
func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "data/profiles"
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &Storage{basePath: basePath}, nil
}

// PutObject writes a file to the local filesystem, replacing any previous version.
func (s *Storage) PutObject(ctx context.Context, key string, data io.Reader, contentType string, size int64) error {
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Write next to the target and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(dir, ".publish-*")
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename file: %w", err)
	}

	return nil
}

// GetObject reads a file from the local filesystem.
func (s *Storage) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %s: %w", key, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}

	return f, nil
}

// DeleteObject removes a file from the local filesystem.
func (s *Storage) DeleteObject(ctx context.Context, key string) error {
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("delete file: %w", err)
	}

	// Try to remove parent directory if empty
	os.Remove(filepath.Dir(fullPath))

	return nil
}

// ObjectExists checks if a file exists in the local filesystem.
func (s *Storage) ObjectExists(ctx context.Context, key string) (bool, error) {
	fullPath, err := s.keyToPath(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}

	return true, nil
}

// GenerateURL returns the API path for reading the published file back.
func (s *Storage) GenerateURL(ctx context.Context, key string, fileName string) (string, error) {
	// key format: {profileKey}/{fileName}
	parts := strings.SplitN(key, "/", 2)
	return fmt.Sprintf("/api/v1/published/%s/%s", parts[0], fileName), nil
}

// Type returns "local" as the storage type identifier.
func (s *Storage) Type() string {
	return "local"
}

// BasePath returns the base path of the storage.
func (s *Storage) BasePath() string {
	return s.basePath
}

// keyToPath converts an object key to a full filesystem path, refusing keys
// that would escape the base directory.
func (s *Storage) keyToPath(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.basePath, cleaned), nil
}
