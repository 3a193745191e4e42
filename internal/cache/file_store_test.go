package cache_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/cache"
)

func TestFileStore_LoadMissing(t *testing.T) {
	store := cache.NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	if _, err := store.Load(context.Background()); !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewFileStore(filepath.Join(dir, "sports_cache.json"))
	writtenAt := time.Now().Add(-30 * time.Minute).Truncate(time.Second)

	if err := store.Save(context.Background(), &cache.Entry{Payload: []byte(`{"a":1}`), WrittenAt: writtenAt}); err != nil {
		t.Fatalf("save: %v", err)
	}

	entry, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(entry.Payload) != `{"a":1}` {
		t.Errorf("unexpected payload %s", entry.Payload)
	}
	if !entry.WrittenAt.Equal(writtenAt) {
		t.Errorf("expected mtime %v, got %v", writtenAt, entry.WrittenAt)
	}

	// Replacing leaves no temp files behind
	if err := store.Save(context.Background(), &cache.Entry{Payload: []byte(`{"b":2}`), WrittenAt: time.Now()}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected only the cache file, found %d entries", len(files))
	}
}

func TestFileStore_Ping(t *testing.T) {
	store := cache.NewFileStore(filepath.Join(t.TempDir(), "sports_cache.json"))
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("expected writable temp dir, got %v", err)
	}

	missing := cache.NewFileStore(filepath.Join(t.TempDir(), "nope", "sports_cache.json"))
	if err := missing.Ping(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}
}
