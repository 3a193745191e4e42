package contracts

import (
	"context"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
)

// LeagueModule is the pluggable interface for one aggregated league feed
type LeagueModule interface {
	// Identification
	Key() string                      // "nfl", "nhl", "cfb", "mlb", "pga"
	DisplayName() string              // "NFL", "College Football"
	ESPNPath() (sport, league string) // "football", "nfl"

	// Fetch returns the raw, unfiltered events for the league.
	// An error means the league is entirely unavailable for this refresh.
	Fetch(ctx context.Context) (*models.LeagueResult, error)
}
