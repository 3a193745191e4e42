package sports

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
	"github.com/sirupsen/logrus"
)

// MultiDayModule accumulates one scoreboard call per calendar day (NHL).
// ESPN's undated hockey scoreboard only covers a single day.
type MultiDayModule struct {
	key      string
	name     string
	sport    string
	league   string
	days     int
	upstream Upstream
	pacer    *ratelimit.Pacer
	location *time.Location
	now      func() time.Time
	logger   logrus.FieldLogger
}

// NewMultiDayModule creates a module that covers `days` days starting today in loc
func NewMultiDayModule(
	key, name, sport, league string,
	days int,
	up Upstream,
	pacer *ratelimit.Pacer,
	loc *time.Location,
	now func() time.Time,
	logger logrus.FieldLogger,
) *MultiDayModule {
	return &MultiDayModule{
		key:      key,
		name:     name,
		sport:    sport,
		league:   league,
		days:     days,
		upstream: up,
		pacer:    pacer,
		location: loc,
		now:      now,
		logger:   logger.WithFields(logrus.Fields{"component": "sports", "league": key}),
	}
}

func (m *MultiDayModule) Key() string {
	return m.key
}

func (m *MultiDayModule) DisplayName() string {
	return m.name
}

func (m *MultiDayModule) ESPNPath() (string, string) {
	return m.sport, m.league
}

// Days returns the calendar days covered by the next fetch
func (m *MultiDayModule) Days() []time.Time {
	today := m.now().In(m.location)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, m.location)

	days := make([]time.Time, 0, m.days)
	for i := 0; i < m.days; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// Fetch calls the scoreboard once per day, pacing before every call.
// Failed days are skipped; an error is returned only when every day failed.
func (m *MultiDayModule) Fetch(ctx context.Context) (*models.LeagueResult, error) {
	result := models.EmptyLeague()
	failed := 0

	for _, day := range m.Days() {
		if err := m.pacer.Wait(ctx); err != nil {
			return result, fmt.Errorf("pacing %s: %w", m.key, err)
		}

		board, err := m.upstream.FetchScoreboard(ctx, m.sport, m.league, day)
		if err != nil {
			failed++
			m.logger.WithField("date", day.Format("2006-01-02")).Warnf("Skipping day: %v", err)
			continue
		}

		result.Events = append(result.Events, board.Events...)
	}

	if m.days > 0 && failed == m.days {
		return result, fmt.Errorf("fetching %s: all %d days failed", m.key, m.days)
	}

	m.logger.WithField("events", len(result.Events)).Debug("Accumulated multi-day scoreboard")
	return result, nil
}
