package schema

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Timestamp layouts accepted in access logs, tried in order. Bare layouts
// cover producers that drop the UTC offset; those are read as UTC.
var logTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an access-log timestamp. It accepts RFC 3339 with
// any offset plus a few common offset-less variants. The second return
// value is false for empty or unparsable input.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range logTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// EndpointKey builds the canonical "METHOD /path" identity used to track
// endpoints across scans and services.
func EndpointKey(method, path string) string {
	return fmt.Sprintf("%s %s", method, path)
}

// FormatLastSeen formats a last-seen timestamp as a date, or "Never" when
// the endpoint was not observed.
func FormatLastSeen(lastSeen *time.Time) string {
	if lastSeen == nil {
		return "Never"
	}
	return lastSeen.Format("2006-01-02")
}

// JoinTruncated joins parts with a separator and truncates the result to
// maxLen runes, appending an ellipsis when content was dropped.
func JoinTruncated(parts []string, sep string, maxLen int) string {
	joined := strings.Join(parts, sep)
	runes := []rune(joined)
	if len(runes) <= maxLen {
		return joined
	}
	return string(runes[:maxLen-3]) + "..."
}

// RoundTo rounds a value to the given number of decimal places.
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
