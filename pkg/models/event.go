package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Event is a raw scoreboard event exactly as ESPN returned it.
// The aggregator reads a handful of fields and passes the rest through untouched.
type Event map[string]interface{}

// ID returns the event identifier. ESPN sends strings, but numeric ids are tolerated.
func (e Event) ID() (string, bool) {
	v, ok := e["id"]
	if !ok || v == nil {
		return "", false
	}
	switch id := v.(type) {
	case string:
		return id, true
	case json.Number:
		return id.String(), true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	default:
		return fmt.Sprint(id), true
	}
}

// Date returns the raw start timestamp ("2025-11-11T23:30Z")
func (e Event) Date() string {
	return ExtractString(e, "date")
}

// EndDate returns the raw end timestamp, only set on multi-day events such as golf tournaments
func (e Event) EndDate() string {
	return ExtractString(e, "endDate")
}

// Name returns the event display name
func (e Event) Name() string {
	return ExtractString(e, "name")
}

// FirstCompetition returns competitions[0] when present
func (e Event) FirstCompetition() (map[string]interface{}, bool) {
	competitions := ExtractArray(e, "competitions")
	if len(competitions) == 0 {
		return nil, false
	}
	comp, ok := competitions[0].(map[string]interface{})
	return comp, ok
}

// Competitors returns the competitor list of the first competition.
// ok is false when there is no competition or the list is missing.
func (e Event) Competitors() ([]map[string]interface{}, bool) {
	comp, ok := e.FirstCompetition()
	if !ok {
		return nil, false
	}
	raw, ok := comp["competitors"].([]interface{})
	if !ok {
		return nil, false
	}

	competitors := make([]map[string]interface{}, 0, len(raw))
	for _, c := range raw {
		if competitor, ok := c.(map[string]interface{}); ok {
			competitors = append(competitors, competitor)
		}
	}
	return competitors, true
}

// ParseInt parses an int from a decoded JSON value
func ParseInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i), true
		}
		if f, err := val.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case float64:
		return int(val), true
	case int:
		return val, true
	case string:
		i, err := strconv.Atoi(val)
		return i, err == nil
	default:
		return 0, false
	}
}

// ExtractString safely extracts a string from a map
func ExtractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// ExtractMap safely extracts a map from a map
func ExtractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// ExtractArray safely extracts an array from a map
func ExtractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}
