package kv

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend keeps one file per key inside a directory.
type FileBackend struct {
	dir string
	mu  sync.RWMutex
}

// NewFileBackend creates dir if needed and returns a backend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("file backend directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory the backend writes to.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) Get(key string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(b.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return string(data), nil
}

// Set writes the value to a temporary file first and renames it into place.
func (b *FileBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := b.pathFor(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(b.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// pathFor escapes the key so it can never leave the directory.
func (b *FileBackend) pathFor(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+".json")
}
