package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldPayload   = "payload"
	fieldWrittenAt = "written_at"
)

// RedisStore keeps the snapshot in one hash: payload plus written_at
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A zero ttl keeps the key until overwritten.
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (s *RedisStore) Name() string {
	return "redis"
}

// Load reads the snapshot hash
func (s *RedisStore) Load(ctx context.Context) (*Entry, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read snapshot hash: %w", err)
	}

	payload, ok := fields[fieldPayload]
	if !ok {
		return nil, ErrNotFound
	}

	writtenAt, err := time.Parse(time.RFC3339Nano, fields[fieldWrittenAt])
	if err != nil {
		// Unknown age is stale
		writtenAt = time.Time{}
	}

	return &Entry{Payload: []byte(payload), WrittenAt: writtenAt}, nil
}

// Save replaces the snapshot hash in one transaction
func (s *RedisStore) Save(ctx context.Context, entry *Entry) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.HSet(ctx, s.key,
			fieldPayload, entry.Payload,
			fieldWrittenAt, entry.WrittenAt.UTC().Format(time.RFC3339Nano),
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write snapshot hash: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
