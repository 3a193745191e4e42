package sports

import (
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
)

const (
	defaultTournamentName = "PGA Tournament"
	defaultLocation       = "TBD"
	unknownDates          = "TBD"
)

// GolfSummary condenses the first tournament of a golf scoreboard.
// Returns nil when there is no tournament.
func GolfSummary(result *models.LeagueResult) *models.GolfSummary {
	if result == nil || len(result.Events) == 0 {
		return nil
	}
	event := result.Events[0]

	summary := &models.GolfSummary{
		Name:     event.Name(),
		Location: defaultLocation,
		Dates:    FormatDateRange(event.Date(), event.EndDate()),
	}
	if summary.Name == "" {
		summary.Name = defaultTournamentName
	}

	if comp, ok := event.FirstCompetition(); ok {
		if venue := models.ExtractString(models.ExtractMap(comp, "venue"), "fullName"); venue != "" {
			summary.Location = venue
		}
	}

	return summary
}

// FormatDateRange renders "Apr 11 - Apr 14, 2024", or "Apr 11, 2024" without an end date
func FormatDateRange(startRaw, endRaw string) string {
	start, ok := models.ParseTime(startRaw)
	if !ok {
		return unknownDates
	}

	dates := start.Format("Jan 2")
	if end, ok := models.ParseTime(endRaw); ok {
		return dates + " - " + end.Format("Jan 2, 2006")
	}
	return dates + ", " + start.Format("2006")
}
