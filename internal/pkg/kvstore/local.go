package kvstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// LocalStore implements Store on the local file system, one file per key.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a new LocalStore rooted at basePath.
func NewLocalStore(basePath string) (*LocalStore, error) {
	// Ensure base path exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// path maps a key to a file name. Keys are escaped so separators in keys
// never create sub directories.
func (s *LocalStore) path(key string) string {
	return filepath.Join(s.basePath, url.PathEscape(key)+".json")
}

// Get reads the file backing key.
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return b, nil
}

// Set writes to a temp file and renames it over the target so readers never
// observe a half-written value.
func (s *LocalStore) Set(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.basePath, ".kv-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store key %q: %w", key, err)
	}
	return nil
}

// Create uses O_EXCL so two writers cannot both claim the key.
func (s *LocalStore) Create(ctx context.Context, key string, value []byte) error {
	file, err := os.OpenFile(s.path(key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrExists
		}
		return fmt.Errorf("failed to create key %q: %w", key, err)
	}
	defer file.Close()

	if _, err := file.Write(value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Close() error {
	return nil
}
