package sports

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MergeModule combines the league-wide scoreboard with the schedules of pinned
// teams (college football), so pinned teams show up even when ESPN's default
// scoreboard leaves them out.
type MergeModule struct {
	key      string
	name     string
	sport    string
	league   string
	teamIDs  []string
	upstream Upstream
	pacer    *ratelimit.Pacer
	logger   logrus.FieldLogger
}

// NewMergeModule creates a multi-source league module
func NewMergeModule(
	key, name, sport, league string,
	teamIDs []string,
	up Upstream,
	pacer *ratelimit.Pacer,
	logger logrus.FieldLogger,
) *MergeModule {
	return &MergeModule{
		key:      key,
		name:     name,
		sport:    sport,
		league:   league,
		teamIDs:  teamIDs,
		upstream: up,
		pacer:    pacer,
		logger:   logger.WithFields(logrus.Fields{"component": "sports", "league": key}),
	}
}

func (m *MergeModule) Key() string {
	return m.key
}

func (m *MergeModule) DisplayName() string {
	return m.name
}

func (m *MergeModule) ESPNPath() (string, string) {
	return m.sport, m.league
}

// Fetch concatenates the scoreboard and every team schedule in call order, then dedups.
// An error is returned only when no source answered.
func (m *MergeModule) Fetch(ctx context.Context) (*models.LeagueResult, error) {
	var events []models.Event
	succeeded := 0

	board, err := m.upstream.FetchScoreboard(ctx, m.sport, m.league, time.Time{})
	if err != nil {
		m.logger.Warnf("League scoreboard unavailable: %v", err)
	} else {
		succeeded++
		events = append(events, board.Events...)
	}

	for _, teamID := range m.teamIDs {
		if err := m.pacer.Wait(ctx); err != nil {
			return &models.LeagueResult{Events: Dedup(events)}, fmt.Errorf("pacing %s: %w", m.key, err)
		}

		schedule, err := m.upstream.FetchTeamSchedule(ctx, m.sport, m.league, teamID)
		if err != nil {
			m.logger.WithField("team_id", teamID).Warnf("Team schedule unavailable: %v", err)
			continue
		}

		succeeded++
		events = append(events, schedule.Events...)
	}

	result := &models.LeagueResult{Events: Dedup(events)}
	if succeeded == 0 {
		return result, fmt.Errorf("fetching %s: no source available", m.key)
	}

	m.logger.WithFields(logrus.Fields{
		"merged": len(events),
		"unique": len(result.Events),
	}).Debug("Merged team schedules")

	return result, nil
}

// Dedup keeps the first event for every identifier, preserving order.
// Events without an identifier get a fresh random key, so they are never
// treated as duplicates of anything.
func Dedup(events []models.Event) []models.Event {
	seen := make(map[string]struct{}, len(events))
	unique := make([]models.Event, 0, len(events))

	for _, event := range events {
		id, ok := event.ID()
		if !ok {
			id = "synthetic:" + uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, event)
	}

	return unique
}
