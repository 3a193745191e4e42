package filter

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/models"
)

// UnrankedSentinel stands in for a missing or unreadable poll rank
const UnrankedSentinel = 999

// WithinDays keeps events starting in [now, now+days*24h], both ends inclusive.
// Events without a parseable date are dropped. Order is preserved.
func WithinDays(events []models.Event, now time.Time, days int) []models.Event {
	end := now.Add(time.Duration(days) * 24 * time.Hour)

	kept := make([]models.Event, 0, len(events))
	for _, event := range events {
		start, ok := event.StartTime()
		if !ok {
			continue
		}
		if start.Before(now) || start.After(end) {
			continue
		}
		kept = append(kept, event)
	}
	return kept
}

// RankedOrPinned keeps events where a competitor of the first competition is
// ranked at or above cutoff, or is one of the pinned teams.
// Events without competitors are dropped. Order is preserved.
func RankedOrPinned(events []models.Event, cutoff int, pinned []string) []models.Event {
	pinnedSet := make(map[string]struct{}, len(pinned))
	for _, id := range pinned {
		pinnedSet[id] = struct{}{}
	}

	kept := make([]models.Event, 0, len(events))
	for _, event := range events {
		competitors, ok := event.Competitors()
		if !ok {
			continue
		}

		for _, competitor := range competitors {
			if Rank(competitor) <= cutoff {
				kept = append(kept, event)
				break
			}
			if _, ok := pinnedSet[teamID(competitor)]; ok {
				kept = append(kept, event)
				break
			}
		}
	}
	return kept
}

// Rank returns curatedRank.current, or UnrankedSentinel when absent.
// ESPN reports unranked teams as 99, which the cutoff excludes as well.
func Rank(competitor map[string]interface{}) int {
	raw, ok := models.ExtractMap(competitor, "curatedRank")["current"]
	if !ok {
		return UnrankedSentinel
	}
	rank, ok := models.ParseInt(raw)
	if !ok {
		return UnrankedSentinel
	}
	return rank
}

func teamID(competitor map[string]interface{}) string {
	// team ids share the event id encoding (string, sometimes numeric)
	id, _ := models.Event(models.ExtractMap(competitor, "team")).ID()
	return id
}
