package models

// League keys used in the snapshot document
const (
	LeagueNFL = "nfl"
	LeagueNHL = "nhl"
	LeagueCFB = "cfb"
	LeagueMLB = "mlb"
	LeaguePGA = "pga"
)

// LeagueResult is the unit every fetcher returns and every filter consumes
type LeagueResult struct {
	Events []Event `json:"events"`
}

// EmptyLeague returns a result that encodes as {"events": []}
func EmptyLeague() *LeagueResult {
	return &LeagueResult{Events: []Event{}}
}

// Len is nil-safe
func (r *LeagueResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Events)
}

// GolfSummary is the condensed view of the current PGA tournament
type GolfSummary struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Dates    string `json:"dates"` // "Apr 11 - Apr 14, 2024"
}

// Snapshot is the full aggregated document served to clients.
// Field order is the key order of the JSON output.
type Snapshot struct {
	NFL *LeagueResult `json:"nfl"`
	NHL *LeagueResult `json:"nhl"`
	CFB *LeagueResult `json:"cfb"`
	MLB *LeagueResult `json:"mlb"`
	PGA *GolfSummary  `json:"pga"` // null when no tournament is available
}

// NewSnapshot returns a snapshot where every league is empty
func NewSnapshot() *Snapshot {
	return &Snapshot{
		NFL: EmptyLeague(),
		NHL: EmptyLeague(),
		CFB: EmptyLeague(),
		MLB: EmptyLeague(),
	}
}

// EventCounts reports the number of events per league key
func (s *Snapshot) EventCounts() map[string]int {
	counts := map[string]int{
		LeagueNFL: s.NFL.Len(),
		LeagueNHL: s.NHL.Len(),
		LeagueCFB: s.CFB.Len(),
		LeagueMLB: s.MLB.Len(),
		LeaguePGA: 0,
	}
	if s.PGA != nil {
		counts[LeaguePGA] = 1
	}
	return counts
}
