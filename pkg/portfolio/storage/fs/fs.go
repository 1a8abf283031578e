// Package fs provides a filesystem blob store for single-host deployments.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// Config options for the filesystem backend.
type Config struct {
	BaseDir   string // base directory for stored files
	URLPrefix string // public URL prefix files are served under
}

// Backend is a filesystem implementation of the portfolio.BlobStore interface.
type Backend struct {
	baseDir   string
	urlPrefix string
}

// New creates a new filesystem storage backend, creating the base directory
// if it does not exist.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}

	prefix := config.URLPrefix
	if prefix == "" {
		prefix = "/uploads"
	}
	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimRight(prefix, "/"),
	}, nil
}

// path resolves objectKey under the base directory and rejects traversal.
func (b *Backend) path(objectKey string) (string, error) {
	p := filepath.Join(b.baseDir, filepath.FromSlash(objectKey))
	rel, err := filepath.Rel(b.baseDir, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid object key %q", objectKey)
	}
	return p, nil
}

// Upload writes the payload to disk under objectKey.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	filePath, err := b.path(objectKey)
	if err != nil {
		return &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "upload", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "upload", Err: err}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "upload", Err: err}
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "upload", Err: err}
	}
	return nil
}

// UploadWithParams writes the payload; the MIME type is detected on read, not
// stored separately.
func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params portfolio.UploadParams) error {
	return b.Upload(ctx, params.ObjectKey, reader)
}

// Download opens the stored file for objectKey.
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	filePath, err := b.path(objectKey)
	if err != nil {
		return nil, &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "download", Err: err}
	}

	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "download", Err: portfolio.ErrNotFound}
	} else if err != nil {
		return nil, &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "download", Err: err}
	}
	return file, nil
}

// URL returns the public path the file is served under.
func (b *Backend) URL(ctx context.Context, objectKey string) (string, error) {
	return b.urlPrefix + "/" + objectKey, nil
}

// Delete removes the stored file and prunes empty directories it leaves
// behind.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	filePath, err := b.path(objectKey)
	if err != nil {
		return &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "delete", Err: err}
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "delete", Err: portfolio.ErrNotFound}
	}
	if err := os.Remove(filePath); err != nil {
		return &portfolio.StorageError{Backend: "fs", Key: objectKey, Op: "delete", Err: err}
	}
	b.cleanupEmptyDirectories(filepath.Dir(filePath))
	return nil
}

func (b *Backend) cleanupEmptyDirectories(dir string) {
	if dir == b.baseDir {
		return
	}
	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		if os.Remove(dir) == nil {
			b.cleanupEmptyDirectories(filepath.Dir(dir))
		}
	}
}
