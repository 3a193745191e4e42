package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the snapshot in one file; the file modification time is the write time
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Name() string {
	return "file"
}

// Load reads the cache file
func (s *FileStore) Load(ctx context.Context) (*Entry, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("stat cache file: %w", err)
	}

	payload, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	return &Entry{Payload: payload, WrittenAt: info.ModTime()}, nil
}

// Save replaces the cache file atomically: readers see the old or the new
// snapshot, never a partial write.
func (s *FileStore) Save(ctx context.Context, entry *Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(entry.Payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if !entry.WrittenAt.IsZero() {
		if err := os.Chtimes(tmpName, entry.WrittenAt, entry.WrittenAt); err != nil {
			return fmt.Errorf("set cache file time: %w", err)
		}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

// Ping checks that the cache directory is writable
func (s *FileStore) Ping(ctx context.Context) error {
	probe, err := os.CreateTemp(filepath.Dir(s.path), ".probe-*")
	if err != nil {
		return fmt.Errorf("cache directory not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}
