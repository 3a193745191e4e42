package sports

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
)

// ScoreboardModule fetches a league with a single scoreboard call (NFL, MLB, PGA)
type ScoreboardModule struct {
	key      string
	name     string
	sport    string
	league   string
	upstream Upstream
}

// NewScoreboardModule creates a single-call league module
func NewScoreboardModule(key, name, sport, league string, up Upstream) *ScoreboardModule {
	return &ScoreboardModule{
		key:      key,
		name:     name,
		sport:    sport,
		league:   league,
		upstream: up,
	}
}

func (m *ScoreboardModule) Key() string {
	return m.key
}

func (m *ScoreboardModule) DisplayName() string {
	return m.name
}

func (m *ScoreboardModule) ESPNPath() (string, string) {
	return m.sport, m.league
}

// Fetch returns ESPN's default scoreboard for the league
func (m *ScoreboardModule) Fetch(ctx context.Context) (*models.LeagueResult, error) {
	board, err := m.upstream.FetchScoreboard(ctx, m.sport, m.league, time.Time{})
	if err != nil {
		return models.EmptyLeague(), fmt.Errorf("fetching %s scoreboard: %w", m.key, err)
	}

	return &models.LeagueResult{Events: board.Events}, nil
}
