package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// filePhotoStorage is the local file system implementation of
// [PhotoStorage]. Photos are kept flat inside dir.
type filePhotoStorage struct {
	dir string
}

// NewFilePhotoStorage constructs a [PhotoStorage] writing into dir. The
// directory is created when missing.
func NewFilePhotoStorage(dir string) (PhotoStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating photo directory: %w", err)
	}

	return &filePhotoStorage{dir: dir}, nil
}

func (s *filePhotoStorage) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhotoName, name)
	}

	return filepath.Join(s.dir, name), nil
}

// Save writes r to dir/name. A partially written file is removed.
func (s *filePhotoStorage) Save(ctx context.Context, name string, _ string, r io.Reader, _ int64) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("error creating photo file: %w", err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("error writing photo file: %w", err)
	}

	return f.Close()
}

func (s *filePhotoStorage) Open(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}

	return f, err
}

func (s *filePhotoStorage) Delete(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error deleting photo file: %w", err)
	}

	return nil
}
