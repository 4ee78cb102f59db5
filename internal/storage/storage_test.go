package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/knowledge-share-api/internal/config"
)

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":         "report.pdf",
		"dir/notes.txt":      "notes.txt",
		"../../etc/passwd":   "passwd",
		`C:\Users\me\doc.md`: "doc.md",
		"with space.png":     "with space.png",
	}
	for in, want := range cases {
		got, err := CleanName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "/", "..", ".", "   "} {
		_, err := CleanName(bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

func TestLocalStore_SaveOpenOverwrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "notes.txt", strings.NewReader("first"), 5, "text/plain"))
	require.NoError(t, store.Save(ctx, "sub/notes.txt", strings.NewReader("second"), 6, "text/plain"))

	rc, obj, err := store.Open(ctx, "notes.txt")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(body))
	assert.Equal(t, int64(6), obj.Size)
	assert.True(t, strings.HasPrefix(obj.ContentType, "text/plain"))

	_, err = os.Stat(filepath.Join(dir, "sub"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew_Backends(t *testing.T) {
	cfg := config.Default()
	cfg.UploadDir = t.TempDir()

	store, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	cfg.StorageBackend = config.StorageMinio
	cfg.MinioEndpoint = ""
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)

	cfg.StorageBackend = "ftp"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}
