// Package storage provides blob storage for doctor profile images. It defines
// the BlobStore interface and a disk-backed implementation; stored blobs are
// referenced by the view URL handed back from Upload.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"patient-appointment-service/config"

	"github.com/google/uuid"
)

var (
	ErrBlobNotFound       = errors.New("blob not found")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrMissingFileName    = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed image size in bytes (5 MB).
const MaxFileSize = 5 * 1024 * 1024

// AllowedContentTypes lists accepted profile image MIME types.
var AllowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// BlobStore defines the contract for image storage backends.
type BlobStore interface {
	Upload(ctx context.Context, fileName, contentType string, content io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// DiskBlobStore stores blobs under a base directory and builds view URLs from
// a configured base URL. Each blob gets a uuid-prefixed name so uploads never
// collide.
type DiskBlobStore struct {
	dir     string
	baseURL string
}

func NewDiskBlobStore(cfg config.StorageConfig) (*DiskBlobStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskBlobStore{
		dir:     cfg.Dir,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

func (s *DiskBlobStore) Upload(_ context.Context, fileName, contentType string, content io.Reader) (string, error) {
	if fileName == "" {
		return "", ErrMissingFileName
	}
	if !AllowedContentTypes[contentType] {
		return "", ErrInvalidContentType
	}

	name := uuid.New().String() + "-" + filepath.Base(fileName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	// LimitReader with one extra byte so an oversized upload is detectable.
	written, err := io.Copy(f, io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	return s.baseURL + "/" + name, nil
}

func (s *DiskBlobStore) Delete(_ context.Context, url string) error {
	name := path(url)
	if name == "" {
		return ErrBlobNotFound
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// path extracts the blob file name from a view URL, rejecting anything that
// could escape the storage directory.
func path(url string) string {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return ""
	}
	name := url[idx+1:]
	if name != filepath.Base(name) || name == "." || name == ".." {
		return ""
	}
	return name
}
