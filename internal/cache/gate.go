package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
	"github.com/sirupsen/logrus"
)

// Status tells whether a snapshot came from the cache or from a fresh build
type Status string

const (
	StatusHit  Status = "HIT"
	StatusMiss Status = "MISS"
)

// Builder produces a fresh snapshot
type Builder interface {
	Build(ctx context.Context) *models.Snapshot
}

// Notifier is told about every rebuilt snapshot
type Notifier interface {
	NotifyRefresh(ctx context.Context, snapshot *models.Snapshot, writtenAt time.Time) error
}

// Gate serves the cached snapshot while it is fresh and rebuilds it otherwise
type Gate struct {
	store    Store
	builder  Builder
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   logrus.FieldLogger
	metrics  *metrics.Metrics
}

// NewGate creates a cache gate. notifier may be nil.
func NewGate(
	store Store,
	builder Builder,
	notifier Notifier,
	interval time.Duration,
	logger logrus.FieldLogger,
	m *metrics.Metrics,
) *Gate {
	return &Gate{
		store:    store,
		builder:  builder,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
		logger:   logger.WithFields(logrus.Fields{"component": "cache", "backend": store.Name()}),
		metrics:  m,
	}
}

// WithClock overrides the clock used for freshness checks
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Snapshot returns the serialized snapshot. A fresh cache entry is returned
// byte for byte without touching the upstream; anything else triggers a full
// rebuild that replaces the cache.
func (g *Gate) Snapshot(ctx context.Context) ([]byte, Status, error) {
	entry, err := g.store.Load(ctx)
	switch {
	case err == nil && g.fresh(entry):
		g.metrics.CacheLookup("hit")
		return entry.Payload, StatusHit, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		g.logger.Warnf("Cache unreadable, rebuilding: %v", err)
	}
	g.metrics.CacheLookup("miss")

	// A client that hangs up must not leave a half-empty snapshot in the cache
	buildCtx := context.WithoutCancel(ctx)

	snapshot := g.builder.Build(buildCtx)
	payload, err := Encode(snapshot)
	if err != nil {
		return nil, StatusMiss, fmt.Errorf("encoding snapshot: %w", err)
	}

	writtenAt := g.now()
	if err := g.store.Save(buildCtx, &Entry{Payload: payload, WrittenAt: writtenAt}); err != nil {
		g.metrics.CacheWriteFailed()
		g.logger.Errorf("Failed to persist snapshot: %v", err)
	}

	if g.notifier != nil {
		if err := g.notifier.NotifyRefresh(buildCtx, snapshot, writtenAt); err != nil {
			g.logger.Warnf("Failed to publish refresh: %v", err)
		}
	}

	return payload, StatusMiss, nil
}

// fresh rejects entries written in the future, so a skewed clock cannot pin a snapshot
func (g *Gate) fresh(entry *Entry) bool {
	age := g.now().Sub(entry.WrittenAt)
	return age >= 0 && age < g.interval
}

// Encode renders the snapshot as pretty-printed JSON with four-space indentation
func Encode(snapshot *models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(snapshot); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
