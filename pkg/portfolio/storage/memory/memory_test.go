package memory_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
	"github.com/webfolio/portfolio-server/pkg/portfolio/storage/memory"
)

func TestMemoryBackend(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	t.Run("upload and download", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "a/b.txt", bytes.NewReader([]byte("payload"))))

		rc, err := backend.Download(ctx, "a/b.txt")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("upload with params records mime type", func(t *testing.T) {
		err := backend.UploadWithParams(ctx, bytes.NewReader([]byte{1}), portfolio.UploadParams{
			ObjectKey: "img.png",
			MimeType:  "image/png",
		})
		require.NoError(t, err)
		assert.Equal(t, "image/png", backend.MimeType("img.png"))
	})

	t.Run("url uses the memory scheme", func(t *testing.T) {
		url, err := backend.URL(ctx, "a/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "memory://a/b.txt", url)
	})

	t.Run("download missing object", func(t *testing.T) {
		_, err := backend.Download(ctx, "missing")
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, "a/b.txt"))
		_, err := backend.Download(ctx, "a/b.txt")
		assert.ErrorIs(t, err, portfolio.ErrNotFound)

		err = backend.Delete(ctx, "a/b.txt")
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})
}
