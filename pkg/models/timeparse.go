package models

import (
	"strings"
	"time"
)

// ESPN mostly sends minute precision ("2025-11-11T23:30Z"), which time.RFC3339 rejects
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses an ESPN timestamp. Layouts without a zone are read as UTC.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartTime returns the parsed event start
func (e Event) StartTime() (time.Time, bool) {
	return ParseTime(e.Date())
}
