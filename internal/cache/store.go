package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load when no snapshot has been written yet
var ErrNotFound = errors.New("cache: snapshot not found")

// Entry is a serialized snapshot and the time it was written
type Entry struct {
	Payload   []byte
	WrittenAt time.Time
}

// Store persists the single rolling snapshot. Save fully replaces the previous entry.
type Store interface {
	Load(ctx context.Context) (*Entry, error)
	Save(ctx context.Context, entry *Entry) error
	Ping(ctx context.Context) error
	Name() string
}
