package sports

import (
	"context"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
	"github.com/sirupsen/logrus"
)

// Upstream is the subset of the ESPN client the fetchers need
type Upstream interface {
	FetchScoreboard(ctx context.Context, sport, league string, date time.Time) (*espn.Scoreboard, error)
	FetchTeamSchedule(ctx context.Context, sport, league, teamID string) (*espn.Scoreboard, error)
}

// Options carries the league settings that shape fetching
type Options struct {
	NHLDays     int
	PinnedTeams []string
	Location    *time.Location
	Now         func() time.Time
}

// Modules returns the five league modules in pipeline order
func Modules(up Upstream, pacer *ratelimit.Pacer, opts Options, logger logrus.FieldLogger) []contracts.LeagueModule {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return []contracts.LeagueModule{
		NewScoreboardModule(models.LeagueNFL, "NFL", "football", "nfl", up),
		NewMultiDayModule(models.LeagueNHL, "NHL", "hockey", "nhl", opts.NHLDays, up, pacer, opts.Location, opts.Now, logger),
		NewMergeModule(models.LeagueCFB, "College Football", "football", "college-football", opts.PinnedTeams, up, pacer, logger),
		NewScoreboardModule(models.LeagueMLB, "MLB", "baseball", "mlb", up),
		NewScoreboardModule(models.LeaguePGA, "PGA Tour", "golf", "pga", up),
	}
}
