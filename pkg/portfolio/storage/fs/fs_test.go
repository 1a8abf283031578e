package fs_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
	"github.com/webfolio/portfolio-server/pkg/portfolio/storage/fs"
)

func newBackend(t *testing.T) (*fs.Backend, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := fs.New(fs.Config{BaseDir: dir, URLPrefix: "/uploads"})
	require.NoError(t, err)
	return backend, dir
}

func TestFilesystemBackend(t *testing.T) {
	backend, dir := newBackend(t)
	ctx := context.Background()

	t.Run("requires a base directory", func(t *testing.T) {
		_, err := fs.New(fs.Config{})
		assert.Error(t, err)
	})

	t.Run("upload writes nested paths", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "images/x/pic.png", bytes.NewReader([]byte("img"))))

		data, err := os.ReadFile(filepath.Join(dir, "images", "x", "pic.png"))
		require.NoError(t, err)
		assert.Equal(t, "img", string(data))
	})

	t.Run("download round-trips", func(t *testing.T) {
		rc, err := backend.Download(ctx, "images/x/pic.png")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "img", string(data))
	})

	t.Run("url joins the prefix", func(t *testing.T) {
		url, err := backend.URL(ctx, "images/x/pic.png")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/images/x/pic.png", url)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		err := backend.Upload(ctx, "../outside.txt", bytes.NewReader([]byte("nope")))
		assert.Error(t, err)
	})

	t.Run("delete prunes empty directories", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, "images/x/pic.png"))

		_, err := os.Stat(filepath.Join(dir, "images"))
		assert.True(t, os.IsNotExist(err), "empty parent directories should be removed")

		err = backend.Delete(ctx, "images/x/pic.png")
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})
}
