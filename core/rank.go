package core

import (
	"sort"

	"github.com/huangsam/graveyard/schema"
)

// rankResults sorts results by confidence score in descending order. The
// sort is stable so equal scores keep their incoming template order.
func rankResults(results []schema.EndpointUsageResult) []schema.EndpointUsageResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ConfidenceScore > results[j].ConfidenceScore
	})
	return results
}

// TopResults returns the first 'limit' ranked results. A non-positive limit
// returns everything.
func TopResults(results []schema.EndpointUsageResult, limit int) []schema.EndpointUsageResult {
	if limit <= 0 || len(results) <= limit {
		return results
	}
	return results[:limit]
}

// FilterByThreshold returns the results whose confidence score is at or
// above the given threshold. Results arrive ranked, so the returned slice
// stays ranked too.
func FilterByThreshold(results []schema.EndpointUsageResult, threshold int) []schema.EndpointUsageResult {
	filtered := make([]schema.EndpointUsageResult, 0, len(results))
	for _, r := range results {
		if r.ConfidenceScore >= threshold {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// CountUnused returns how many results never appeared in the logs.
func CountUnused(results []schema.EndpointUsageResult) int {
	count := 0
	for _, r := range results {
		if r.IsUnused() {
			count++
		}
	}
	return count
}
