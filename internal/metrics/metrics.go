package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sports"

// Metrics groups the aggregator's collectors.
// All methods are safe to call on a nil *Metrics, which records nothing.
type Metrics struct {
	upstreamRequests   *prometheus.CounterVec
	upstreamDuration   *prometheus.HistogramVec
	cacheLookups       *prometheus.CounterVec
	cacheWriteFailures prometheus.Counter
	buildDuration      prometheus.Histogram
	leagueEvents       *prometheus.GaugeVec
	leagueFailures     *prometheus.CounterVec
}

// New creates the collectors and registers them on reg (skipped when reg is nil)
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "ESPN requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "ESPN request latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Snapshot cache lookups by result (hit, miss)",
		}, []string{"result"}),
		cacheWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_write_failures_total",
			Help:      "Snapshots that could not be persisted",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_build_duration_seconds",
			Help:      "Time spent running the full aggregation pipeline",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}),
		leagueEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "league_events",
			Help:      "Events per league in the latest snapshot",
		}, []string{"league"}),
		leagueFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "league_failures_total",
			Help:      "League fetches that produced no data",
		}, []string{"league"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.upstreamRequests, m.upstreamDuration,
			m.cacheLookups, m.cacheWriteFailures,
			m.buildDuration, m.leagueEvents, m.leagueFailures,
		)
	}

	return m
}

// ObserveUpstream records one ESPN call
func (m *Metrics) ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// CacheLookup records a hit or a miss
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// CacheWriteFailed records a snapshot that was served but not persisted
func (m *Metrics) CacheWriteFailed() {
	if m == nil {
		return
	}
	m.cacheWriteFailures.Inc()
}

// ObserveBuild records a pipeline run
func (m *Metrics) ObserveBuild(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(elapsed.Seconds())
}

// SetLeagueEvents records the event count of a league in the latest snapshot
func (m *Metrics) SetLeagueEvents(league string, n int) {
	if m == nil {
		return
	}
	m.leagueEvents.WithLabelValues(league).Set(float64(n))
}

// LeagueFailed records a league fetch that fell back to empty data
func (m *Metrics) LeagueFailed(league string) {
	if m == nil {
		return
	}
	m.leagueFailures.WithLabelValues(league).Inc()
}
