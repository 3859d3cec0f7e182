// Package storage is the file-storage collaborator for product images. Files
// land under a configured root keyed by the sanitized filename; a repeated
// upload of the same name overwrites the previous file (last write wins).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

var (
	ErrInvalidImageType = errors.New("invalid image type, only jpg, jpeg and png are allowed")
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ImageStore writes uploaded images below a single root directory
type ImageStore struct {
	root     string
	maxBytes int64
}

// NewImageStore creates an image store rooted at dir
func NewImageStore(dir string, maxBytes int64) *ImageStore {
	return &ImageStore{root: dir, maxBytes: maxBytes}
}

// SanitizeFilename strips any path components and collapses whitespace so the
// stored name is safe to join below the root.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// Save validates the extension and size, then writes the file under the root.
// The write is retried on transient failure with capped exponential backoff.
// Returns the stored filename.
func (s *ImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)

	ext := filepath.Ext(name)
	if !allowedExtensions[ext] {
		return "", ErrInvalidImageType
	}

	// Buffer the upload so a retried write starts from the full content.
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.root, name)
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return name, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *ImageStore) Remove(name string) error {
	path := filepath.Join(s.root, SanitizeFilename(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
