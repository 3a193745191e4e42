package sports_test

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
)

// fakeUpstream serves canned boards keyed by "sport/league/scoreboard[?date]" or "sport/league/teams/{id}"
type fakeUpstream struct {
	boards map[string][]models.Event
	calls  []string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{boards: make(map[string][]models.Event)}
}

func (f *fakeUpstream) FetchScoreboard(ctx context.Context, sport, league string, date time.Time) (*espn.Scoreboard, error) {
	key := fmt.Sprintf("%s/%s/scoreboard", sport, league)
	if !date.IsZero() {
		key += "?" + date.Format("20060102")
	}
	return f.serve(key)
}

func (f *fakeUpstream) FetchTeamSchedule(ctx context.Context, sport, league, teamID string) (*espn.Scoreboard, error) {
	return f.serve(fmt.Sprintf("%s/%s/teams/%s", sport, league, teamID))
}

func (f *fakeUpstream) serve(key string) (*espn.Scoreboard, error) {
	f.calls = append(f.calls, key)
	events, ok := f.boards[key]
	if !ok {
		return nil, fmt.Errorf("%w: status=503", espn.ErrUnavailable)
	}
	return &espn.Scoreboard{Events: events}, nil
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		id, _ := e.ID()
		out = append(out, id)
	}
	return out
}
