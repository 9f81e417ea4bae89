package listing

import (
	"strconv"
	"strings"
	"time"
)

// Feed text arrives with whatever the upstream board emitted: empty strings,
// stray thousands separators, free-text placeholders. These helpers are
// total: anything that does not parse cleanly becomes nil, never an error.

// ParseOptionalInt parses raw feed text into an int, or nil.
func ParseOptionalInt(raw string) *int {
	cleaned := cleanNumeric(raw)
	if cleaned == "" {
		return nil
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &value
}

// ParseOptionalFloat parses raw feed text into a float64, or nil.
func ParseOptionalFloat(raw string) *float64 {
	cleaned := cleanNumeric(raw)
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// dateLayouts covers the formats seen on mirror rows. The sync normally
// writes ISO dates; older snapshots carried timestamps.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseOptionalDate parses raw feed text into a time, or nil. A value that
// parses but is zero is also treated as absent so it never serializes as a
// bogus epoch date.
func ParseOptionalDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if parsed.IsZero() {
			return nil
		}
		return &parsed
	}
	return nil
}

func cleanNumeric(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	return cleaned
}
