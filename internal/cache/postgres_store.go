package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS snapshot_cache (
		cache_key  TEXT PRIMARY KEY,
		payload    BYTEA NOT NULL,
		written_at TIMESTAMPTZ NOT NULL
	)
`

// PostgresStore keeps the snapshot in one row of snapshot_cache.
// The payload is BYTEA rather than JSONB so the served bytes stay exactly as written.
type PostgresStore struct {
	db  *sql.DB
	key string
}

// NewPostgresStore creates a Postgres-backed store
func NewPostgresStore(db *sql.DB, key string) *PostgresStore {
	return &PostgresStore{db: db, key: key}
}

func (s *PostgresStore) Name() string {
	return "postgres"
}

// EnsureSchema creates the snapshot table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}
	return nil
}

// Load reads the snapshot row
func (s *PostgresStore) Load(ctx context.Context) (*Entry, error) {
	query := `SELECT payload, written_at FROM snapshot_cache WHERE cache_key = $1`

	var entry Entry
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&entry.Payload, &entry.WrittenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	return &entry, nil
}

// Save upserts the snapshot row
func (s *PostgresStore) Save(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO snapshot_cache (cache_key, payload, written_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE
		SET payload = EXCLUDED.payload, written_at = EXCLUDED.written_at
	`

	if _, err := s.db.ExecContext(ctx, query, s.key, entry.Payload, entry.WrittenAt); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
