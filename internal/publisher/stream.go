package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
	"github.com/redis/go-redis/v9"
)

// maxStreamLen caps the refresh stream; consumers only care about recent refreshes
const maxStreamLen = 1000

// StreamPublisher announces snapshot refreshes on a Redis stream
type StreamPublisher struct {
	client *redis.Client
	stream string
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
	}
}

// NotifyRefresh publishes the per-league event counts of a rebuilt snapshot
func (p *StreamPublisher) NotifyRefresh(ctx context.Context, snapshot *models.Snapshot, writtenAt time.Time) error {
	counts, err := json.Marshal(snapshot.EventCounts())
	if err != nil {
		return fmt.Errorf("marshaling refresh counts: %w", err)
	}

	pga := ""
	if snapshot.PGA != nil {
		pga = snapshot.PGA.Name
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"written_at": writtenAt.UTC().Format(time.RFC3339),
			"counts":     string(counts),
			"pga":        pga,
		},
	}).Err()
}
