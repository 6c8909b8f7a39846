package core

import (
	"testing"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// FuzzScoreUsage fuzzes the scoreUsage function with random usage shapes.
func FuzzScoreUsage(f *testing.F) {
	seeds := []struct {
		callCount     int
		daysAgo       int
		hasLastSeen   bool
		uniqueCallers int
	}{
		{0, 0, false, 0},
		{1, 400, true, 1},
		{5, 30, true, 3},
		{100, 365, true, 10},
		{10000, 1, true, 500},
		{3, 0, false, 0},
	}
	for _, seed := range seeds {
		f.Add(seed.callCount, seed.daysAgo, seed.hasLastSeen, seed.uniqueCallers)
	}

	f.Fuzz(func(t *testing.T, callCount int, daysAgo int, hasLastSeen bool, uniqueCallers int) {
		// Negative counts never occur; aggregation only increments.
		if callCount < 0 || uniqueCallers < 0 || daysAgo < 0 {
			t.Skip()
		}

		now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		var lastSeen *time.Time
		if hasLastSeen {
			ts := now.Add(-time.Duration(daysAgo) * 24 * time.Hour)
			lastSeen = &ts
		}

		score, reasons := scoreUsage(callCount, lastSeen, uniqueCallers, now)

		if score < minScore || score > maxScore {
			t.Errorf("score %d out of range [%d, %d]", score, minScore, maxScore)
		}
		if len(reasons) == 0 {
			t.Error("score should always carry at least one reason")
		}
		if callCount == 0 && score != maxScore {
			t.Errorf("zero calls must score %d, got %d", maxScore, score)
		}
	})
}

// FuzzMatchPath fuzzes path matching with arbitrary request paths.
func FuzzMatchPath(f *testing.F) {
	seeds := []string{
		"/api/users",
		"/api/users/123",
		"//api///users//",
		"",
		"   ",
		"/api/users/{id}",
		"/../../etc/passwd",
		"/api/\x00/users",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, path string) {
		templates := []schema.EndpointTemplate{
			{Method: "GET", Path: "/api/users"},
			{Method: "GET", Path: "/api/users/{id}"},
			{Method: "POST", Path: "/api/orders/{id}/items"},
		}

		matched := MatchPath(path, templates, "GET")

		// Whatever comes back must be one of the template paths or empty.
		switch matched {
		case "", "/api/users", "/api/users/{id}":
		default:
			t.Errorf("MatchPath returned %q which is not a known template", matched)
		}
	})
}
