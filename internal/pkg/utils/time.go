package utils

import "time"

const dateOnlyLayout = "2006-01-02"

// ParseFlexibleDate accepts a calendar date or a full RFC3339 timestamp.
func ParseFlexibleDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(dateOnlyLayout, value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
