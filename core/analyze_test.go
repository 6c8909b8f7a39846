package core

import (
	"fmt"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/graveyard/schema"
)

// analyzeNow is a fixed reference time for deterministic day arithmetic.
var analyzeNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// logSeq wraps a slice of entries in the streaming shape AnalyzeUsage takes.
func logSeq(entries []schema.LogEntry) iter.Seq[schema.LogEntry] {
	return slices.Values(entries)
}

// sampleTemplates is a small API surface with exact and parameterized paths.
func sampleTemplates() []schema.EndpointTemplate {
	return []schema.EndpointTemplate{
		{Method: "GET", Path: "/api/users"},
		{Method: "GET", Path: "/api/users/{id}"},
		{Method: "POST", Path: "/api/users"},
		{Method: "DELETE", Path: "/api/cache"},
		{Method: "GET", Path: "/api/orders/{id}"},
	}
}

// sampleLogs exercises matching, skipping, timestamp and caller handling.
func sampleLogs() []schema.LogEntry {
	return []schema.LogEntry{
		{Method: "GET", Path: "/api/users/1", Timestamp: "2025-06-10T08:00:00Z", User: "svc-a"},
		{Method: "GET", Path: "/api/users/2", Timestamp: "2025-06-12T08:00:00Z", ClientID: "mobile-app"},
		{Method: "get", Path: "/api/users", Timestamp: "2025-06-13T09:00:00Z", Caller: "svc-b"},
		{Method: "GET", Path: "/api/users", Timestamp: "2025-06-01T09:00:00Z", Caller: "svc-a"},
		{Method: "GET", Path: "/api/unknown", Timestamp: "2025-06-13T09:00:00Z", Caller: "svc-b"},
		{Method: "GET", Path: "", Timestamp: "2025-06-13T09:00:00Z"},
		{Method: "", Path: "/api/users", Timestamp: "2025-06-13T09:00:00Z"},
		{Method: "GET", Path: "/api/orders/55", Timestamp: "not-a-time"},
		{Method: "POST", Path: "/api/users/1", Timestamp: "2025-06-13T09:00:00Z"},
	}
}

func TestAnalyzeUsage(t *testing.T) {
	results := AnalyzeUsage(sampleTemplates(), logSeq(sampleLogs()), analyzeNow)
	require.Len(t, results, 5, "every template should yield exactly one result")

	// Results come back ranked: the two never-called endpoints first in
	// template order, then the rest by descending confidence.
	assert.Equal(t, "POST", results[0].Method)
	assert.Equal(t, "/api/users", results[0].Path)
	assert.Equal(t, 100, results[0].ConfidenceScore)
	assert.Equal(t, []string{"Never called in logs"}, results[0].ConfidenceReasons)
	assert.True(t, results[0].IsUnused())

	assert.Equal(t, "DELETE", results[1].Method)
	assert.Equal(t, "/api/cache", results[1].Path)
	assert.Equal(t, 100, results[1].ConfidenceScore)

	// One call with an unparsable timestamp and no caller identity.
	orders := results[2]
	assert.Equal(t, "GET", orders.Method)
	assert.Equal(t, "/api/orders/{id}", orders.Path)
	assert.Equal(t, 1, orders.CallCount)
	assert.Nil(t, orders.LastSeen, "unparsable timestamp should not set last seen")
	assert.Equal(t, 0, orders.UniqueCallers)
	assert.Equal(t, 85, orders.ConfidenceScore)
	assert.Equal(t, []string{"Called only once", "Few unique callers (0)"}, orders.ConfidenceReasons)

	// Equal scores keep template order: the literal template before the
	// parameterized one.
	users := results[3]
	assert.Equal(t, "GET", users.Method)
	assert.Equal(t, "/api/users", users.Path)
	assert.Equal(t, 2, users.CallCount, "lowercase method should still match")
	require.NotNil(t, users.LastSeen)
	assert.Equal(t, time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC), *users.LastSeen)
	assert.Equal(t, 2, users.UniqueCallers)
	assert.Equal(t, []string{"svc-a", "svc-b"}, users.Callers)
	assert.Equal(t, 65, users.ConfidenceScore) // 50 + 20 - 10 + 5

	userByID := results[4]
	assert.Equal(t, "GET", userByID.Method)
	assert.Equal(t, "/api/users/{id}", userByID.Path)
	assert.Equal(t, 2, userByID.CallCount)
	require.NotNil(t, userByID.LastSeen)
	assert.Equal(t, time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC), *userByID.LastSeen)
	assert.Equal(t, []string{"mobile-app", "svc-a"}, userByID.Callers, "user and client_id should both resolve")
	assert.Equal(t, 65, userByID.ConfidenceScore)
}

// TestAnalyzeUsageIdempotent verifies that re-running the same inputs
// produces identical output.
func TestAnalyzeUsageIdempotent(t *testing.T) {
	first := AnalyzeUsage(sampleTemplates(), logSeq(sampleLogs()), analyzeNow)
	second := AnalyzeUsage(sampleTemplates(), logSeq(sampleLogs()), analyzeNow)
	assert.Equal(t, first, second)
}

// TestAnalyzeUsageStreaming verifies that a one-shot streaming sequence
// produces the same results as a slice-backed one.
func TestAnalyzeUsageStreaming(t *testing.T) {
	entries := sampleLogs()

	yields := 0
	stream := func(yield func(schema.LogEntry) bool) {
		for _, e := range entries {
			yields++
			if !yield(e) {
				return
			}
		}
	}

	fromStream := AnalyzeUsage(sampleTemplates(), stream, analyzeNow)
	fromSlice := AnalyzeUsage(sampleTemplates(), logSeq(entries), analyzeNow)

	assert.Equal(t, fromSlice, fromStream)
	assert.Equal(t, len(entries), yields, "the log sequence should be consumed exactly once")
}

// TestAnalyzeUsageDuplicateTemplates verifies duplicate (method, path)
// pairs collapse into a single result.
func TestAnalyzeUsageDuplicateTemplates(t *testing.T) {
	templates := []schema.EndpointTemplate{
		{Method: "GET", Path: "/api/users"},
		{Method: "GET", Path: "/api/users"},
		{Method: "POST", Path: "/api/users"},
	}

	results := AnalyzeUsage(templates, logSeq(nil), analyzeNow)
	require.Len(t, results, 2)

	keys := make(map[string]struct{})
	for _, r := range results {
		keys[schema.EndpointKey(r.Method, r.Path)] = struct{}{}
	}
	assert.Len(t, keys, 2, "results should be keyed by distinct method and path")
}

// TestAnalyzeUsageZeroUsage verifies the never-called invariant: zero calls
// always means maximum confidence, and unused status tracks the call count.
func TestAnalyzeUsageZeroUsage(t *testing.T) {
	results := AnalyzeUsage(sampleTemplates(), logSeq(sampleLogs()), analyzeNow)

	for _, r := range results {
		assert.Equal(t, r.CallCount == 0, r.IsUnused(), "%s %s", r.Method, r.Path)
		if r.CallCount == 0 {
			assert.Equal(t, 100, r.ConfidenceScore, "%s %s", r.Method, r.Path)
			assert.Nil(t, r.LastSeen)
			assert.Empty(t, r.Callers)
		}
	}
}

// TestAnalyzeUsageCallerPrecedence verifies identity resolution prefers
// caller, then user, then client_id.
func TestAnalyzeUsageCallerPrecedence(t *testing.T) {
	templates := []schema.EndpointTemplate{{Method: "GET", Path: "/api/ping"}}
	entries := []schema.LogEntry{
		{Method: "GET", Path: "/api/ping", Caller: "a", User: "b", ClientID: "c"},
		{Method: "GET", Path: "/api/ping", User: "u", ClientID: "c2"},
		{Method: "GET", Path: "/api/ping", ClientID: "c3"},
		{Method: "GET", Path: "/api/ping"},
	}

	results := AnalyzeUsage(templates, logSeq(entries), analyzeNow)
	require.Len(t, results, 1)

	assert.Equal(t, 4, results[0].CallCount)
	assert.Equal(t, 3, results[0].UniqueCallers, "entry without identity adds no caller")
	assert.Equal(t, []string{"a", "c3", "u"}, results[0].Callers)
}

// TestAnalyzeUsageCallerCap verifies the caller sample tops out at ten
// while the unique count keeps the full total.
func TestAnalyzeUsageCallerCap(t *testing.T) {
	templates := []schema.EndpointTemplate{{Method: "GET", Path: "/api/ping"}}

	var entries []schema.LogEntry
	for i := 1; i <= 15; i++ {
		entries = append(entries, schema.LogEntry{
			Method: "GET",
			Path:   "/api/ping",
			Caller: fmt.Sprintf("caller-%02d", i),
		})
	}

	results := AnalyzeUsage(templates, logSeq(entries), analyzeNow)
	require.Len(t, results, 1)

	assert.Equal(t, 15, results[0].UniqueCallers)
	require.Len(t, results[0].Callers, 10)
	assert.True(t, slices.IsSorted(results[0].Callers), "caller sample should be sorted")
	assert.Equal(t, "caller-01", results[0].Callers[0])
	assert.Equal(t, "caller-10", results[0].Callers[9])
}

// TestAnalyzeUsageLastSeenMax verifies out-of-order timestamps resolve to
// the most recent parsable one.
func TestAnalyzeUsageLastSeenMax(t *testing.T) {
	templates := []schema.EndpointTemplate{{Method: "GET", Path: "/api/ping"}}
	entries := []schema.LogEntry{
		{Method: "GET", Path: "/api/ping", Timestamp: "2025-03-01T00:00:00Z"},
		{Method: "GET", Path: "/api/ping", Timestamp: "2025-05-20T10:30:00Z"},
		{Method: "GET", Path: "/api/ping", Timestamp: "2025-01-15T00:00:00Z"},
		{Method: "GET", Path: "/api/ping", Timestamp: "garbage"},
	}

	results := AnalyzeUsage(templates, logSeq(entries), analyzeNow)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].LastSeen)
	assert.Equal(t, time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC), *results[0].LastSeen)
}

// TestAnalyzeUsageNoTemplates verifies an empty API surface yields no
// results regardless of log volume.
func TestAnalyzeUsageNoTemplates(t *testing.T) {
	results := AnalyzeUsage(nil, logSeq(sampleLogs()), analyzeNow)
	assert.Empty(t, results)
}

// TestAnalyzeUsageZeroNow verifies the zero time falls back to the clock
// without disturbing never-called scoring.
func TestAnalyzeUsageZeroNow(t *testing.T) {
	templates := []schema.EndpointTemplate{{Method: "GET", Path: "/api/ping"}}
	results := AnalyzeUsage(templates, logSeq(nil), time.Time{})
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].ConfidenceScore)
}
