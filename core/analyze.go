package core

import (
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// endpointKey identifies one template in the stats table.
type endpointKey struct {
	method string
	path   string
}

// usageStats accumulates per-endpoint usage while logs stream through.
type usageStats struct {
	callCount int
	lastSeen  time.Time
	callers   map[string]struct{}
}

// AnalyzeUsage consumes the log sequence exactly once and scores every
// endpoint template against it. Memory stays proportional to the number of
// templates plus distinct callers, never to the log volume, so arbitrarily
// large logs can stream through.
//
// Per entry: the method is upper-cased, entries missing a method or path
// are skipped, and the path is resolved against the templates with
// MatchPath. On a match the call count increments, the timestamp (when
// parsable) advances last-seen, and the caller identity (when present)
// joins the caller set. Unmatched entries and bad timestamps are ignored
// rather than reported.
//
// Every distinct (method, path) template yields exactly one result;
// duplicate templates collapse into a single entry. Results come back
// sorted by confidence score, highest first, with equal scores keeping
// their template order. A zero now defaults to the current UTC time.
func AnalyzeUsage(templates []schema.EndpointTemplate, logs iter.Seq[schema.LogEntry], now time.Time) []schema.EndpointUsageResult {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	stats := make(map[endpointKey]*usageStats, len(templates))
	order := make([]endpointKey, 0, len(templates))
	for _, tmpl := range templates {
		key := endpointKey{method: tmpl.Method, path: tmpl.Path}
		if _, ok := stats[key]; !ok {
			order = append(order, key)
		}
		stats[key] = &usageStats{callers: make(map[string]struct{})}
	}

	for entry := range logs {
		method := strings.ToUpper(entry.Method)
		if method == "" || entry.Path == "" {
			continue
		}

		matched := MatchPath(entry.Path, templates, method)
		if matched == "" {
			continue
		}
		st, ok := stats[endpointKey{method: method, path: matched}]
		if !ok {
			continue
		}

		st.callCount++
		if ts, ok := schema.ParseTimestamp(entry.Timestamp); ok && ts.After(st.lastSeen) {
			st.lastSeen = ts
		}
		if caller := entry.ResolveCaller(); caller != "" {
			st.callers[caller] = struct{}{}
		}
	}

	results := make([]schema.EndpointUsageResult, 0, len(order))
	for _, key := range order {
		results = append(results, buildResult(key, stats[key], now))
	}
	return rankResults(results)
}

// buildResult converts one endpoint's accumulated stats into a scored result.
func buildResult(key endpointKey, st *usageStats, now time.Time) schema.EndpointUsageResult {
	var lastSeen *time.Time
	if !st.lastSeen.IsZero() {
		ts := st.lastSeen
		lastSeen = &ts
	}

	score, reasons := scoreUsage(st.callCount, lastSeen, len(st.callers), now)

	callers := make([]string, 0, len(st.callers))
	for c := range st.callers {
		callers = append(callers, c)
	}
	sort.Strings(callers)
	if len(callers) > maxCallersShown {
		callers = callers[:maxCallersShown]
	}

	return schema.EndpointUsageResult{
		Method:            key.method,
		Path:              key.path,
		CallCount:         st.callCount,
		LastSeen:          lastSeen,
		UniqueCallers:     len(st.callers),
		Callers:           callers,
		ConfidenceScore:   score,
		ConfidenceReasons: reasons,
	}
}
