package har

import (
	"fmt"
	"time"
)

// Layouts seen in startedDateTime values, most common first
var startedLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// ParseHARDateTime parses a HAR timestamp, accepting the variants browsers emit
func ParseHARDateTime(value string) (time.Time, error) {
	for _, layout := range startedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime %q", value)
}

// StartedAt returns the parsed start time, or false when it is missing or malformed
func (e Entry) StartedAt() (time.Time, bool) {
	if e.StartedDateTime == "" {
		return time.Time{}, false
	}
	t, err := ParseHARDateTime(e.StartedDateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
