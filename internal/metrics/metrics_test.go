package metrics_test

import (
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveUpstream("hockey/nhl/scoreboard", "ok", 120*time.Millisecond)
	m.CacheLookup("hit")
	m.CacheLookup("miss")
	m.CacheWriteFailed()
	m.ObserveBuild(3 * time.Second)
	m.SetLeagueEvents("nhl", 12)
	m.LeagueFailed("nfl")

	count, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	// upstream counter, histogram, cache lookups (2 series), write failures, build, league events, league failures
	if count != 8 {
		t.Errorf("expected 8 series, got %d", count)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics

	// None of these may panic
	m.ObserveUpstream("football/nfl/scoreboard", "http_error", time.Second)
	m.CacheLookup("hit")
	m.CacheWriteFailed()
	m.ObserveBuild(time.Second)
	m.SetLeagueEvents("cfb", 1)
	m.LeagueFailed("cfb")
}
