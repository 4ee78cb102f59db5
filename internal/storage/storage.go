package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/yukikurage/knowledge-share-api/internal/config"
)

// ErrNotFound is returned when the requested file does not exist.
var ErrNotFound = errors.New("storage: file not found")

// ErrInvalidName is returned for names that do not resolve to a plain file name.
var ErrInvalidName = errors.New("storage: invalid file name")

// Object describes a stored file.
type Object struct {
	Name        string
	Size        int64
	ContentType string
}

// Store persists uploaded files keyed by name. Saving an existing name replaces it.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, Object, error)
}

// New builds the store selected by the configuration.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal, "":
		return NewLocalStore(cfg.UploadDir)
	case config.StorageMinio:
		return NewMinioStore(ctx, MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

// CleanName keeps the client-supplied file name but drops any directory part.
func CleanName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." || strings.TrimSpace(base) == "" {
		return "", ErrInvalidName
	}
	return base, nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
