package aggregator

import (
	"context"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/filter"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/registry"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/sports"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
	"github.com/sirupsen/logrus"
)

// Rules holds the per-league filter settings
type Rules struct {
	CFBWindowDays int
	CFBRankCutoff int
	PinnedTeams   []string
	MLBWindowDays int
}

// Orchestrator runs every league module in registry order and assembles the snapshot
type Orchestrator struct {
	registry *registry.Registry
	pacer    *ratelimit.Pacer
	rules    Rules
	now      func() time.Time
	logger   logrus.FieldLogger
	metrics  *metrics.Metrics
}

// NewOrchestrator creates a new aggregation orchestrator
func NewOrchestrator(
	reg *registry.Registry,
	pacer *ratelimit.Pacer,
	rules Rules,
	logger logrus.FieldLogger,
	m *metrics.Metrics,
) *Orchestrator {
	return &Orchestrator{
		registry: reg,
		pacer:    pacer,
		rules:    rules,
		now:      time.Now,
		logger:   logger.WithField("component", "aggregator"),
		metrics:  m,
	}
}

// WithClock overrides the clock used by the time-window filters
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Build fetches and filters every league, one after another, pacing between stages.
// A league that fails ends up empty (or null for golf); it never stops later leagues.
func (o *Orchestrator) Build(ctx context.Context) *models.Snapshot {
	started := time.Now()
	snapshot := models.NewSnapshot()

	modules := o.registry.Modules()
	for i, module := range modules {
		o.runStage(ctx, module, snapshot)

		if i < len(modules)-1 {
			if err := o.pacer.Wait(ctx); err != nil {
				o.logger.Debugf("Pacing interrupted: %v", err)
			}
		}
	}

	elapsed := time.Since(started)
	o.metrics.ObserveBuild(elapsed)
	for league, n := range snapshot.EventCounts() {
		o.metrics.SetLeagueEvents(league, n)
	}

	o.logger.WithFields(logrus.Fields{
		"elapsed": elapsed.Round(time.Millisecond),
		"nfl":     snapshot.NFL.Len(),
		"nhl":     snapshot.NHL.Len(),
		"cfb":     snapshot.CFB.Len(),
		"mlb":     snapshot.MLB.Len(),
		"pga":     snapshot.PGA != nil,
	}).Info("Built sports snapshot")

	return snapshot
}

func (o *Orchestrator) runStage(ctx context.Context, module contracts.LeagueModule, snapshot *models.Snapshot) {
	key := module.Key()
	log := o.logger.WithField("league", key)

	result, err := module.Fetch(ctx)
	if err != nil {
		log.Warnf("League unavailable, serving empty data: %v", err)
		o.metrics.LeagueFailed(key)
	}
	if result == nil {
		result = models.EmptyLeague()
	}

	switch key {
	case models.LeagueNFL:
		snapshot.NFL = result
	case models.LeagueNHL:
		snapshot.NHL = result
	case models.LeagueCFB:
		inWindow := filter.WithinDays(result.Events, o.now(), o.rules.CFBWindowDays)
		snapshot.CFB = &models.LeagueResult{
			Events: filter.RankedOrPinned(inWindow, o.rules.CFBRankCutoff, o.rules.PinnedTeams),
		}
		log.Debugf("Filtered %d -> %d -> %d events", len(result.Events), len(inWindow), len(snapshot.CFB.Events))
	case models.LeagueMLB:
		snapshot.MLB = &models.LeagueResult{
			Events: filter.WithinDays(result.Events, o.now(), o.rules.MLBWindowDays),
		}
	case models.LeaguePGA:
		snapshot.PGA = sports.GolfSummary(result)
	default:
		log.Warn("No snapshot slot for league, skipping")
	}
}
