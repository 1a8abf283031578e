// Package memory provides an in-memory blob store for tests and development.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// Backend is an in-memory implementation of the portfolio.BlobStore interface.
type Backend struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	mimeTypes map[string]string
}

// New creates a new in-memory storage backend.
func New() *Backend {
	return &Backend{
		objects:   make(map[string][]byte),
		mimeTypes: make(map[string]string),
	}
}

// Upload stores the payload under objectKey.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &portfolio.StorageError{Backend: "memory", Key: objectKey, Op: "upload", Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = data
	if _, exists := b.mimeTypes[objectKey]; !exists {
		b.mimeTypes[objectKey] = "application/octet-stream"
	}
	return nil
}

// UploadWithParams stores the payload and records its MIME type.
func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params portfolio.UploadParams) error {
	if err := b.Upload(ctx, params.ObjectKey, reader); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.mimeTypes[params.ObjectKey] = params.MimeType
	return nil
}

// Download retrieves the payload for objectKey.
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, &portfolio.StorageError{Backend: "memory", Key: objectKey, Op: "download", Err: portfolio.ErrNotFound}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// URL returns a synthetic address for the object. The memory backend is not
// externally reachable; the scheme makes that obvious in logs and tests.
func (b *Backend) URL(ctx context.Context, objectKey string) (string, error) {
	return "memory://" + objectKey, nil
}

// Delete removes the payload for objectKey.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return &portfolio.StorageError{Backend: "memory", Key: objectKey, Op: "delete", Err: portfolio.ErrNotFound}
	}
	delete(b.objects, objectKey)
	delete(b.mimeTypes, objectKey)
	return nil
}

// MimeType reports the recorded MIME type for objectKey; tests use it to
// verify UploadWithParams took effect.
func (b *Backend) MimeType(objectKey string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mimeTypes[objectKey]
}
