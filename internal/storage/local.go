package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads in a directory on disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(name string) (string, error) {
	clean, err := CleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *LocalStore) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, Object, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, Object{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Object{}, ErrNotFound
		}
		return nil, Object{}, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Object{}, err
	}
	if info.IsDir() {
		f.Close()
		return nil, Object{}, ErrNotFound
	}

	return f, Object{
		Name:        info.Name(),
		Size:        info.Size(),
		ContentType: contentTypeFor(info.Name()),
	}, nil
}
