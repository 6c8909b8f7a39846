package core

import (
	"sort"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// CompareScans computes the endpoint-level differences between two stored
// scans, typically an older and a newer one of the same service. Endpoints
// are matched on their "METHOD /path" key.
//
// Every output list is deterministically ordered: membership changes sort
// lexicographically, usage changes sort by delta magnitude descending with
// the endpoint key as tie-breaker.
func CompareScans(scan1, scan2 *schema.ScanDetail) schema.ScanComparison {
	endpoints1 := snapshotsByKey(scan1.Endpoints)
	endpoints2 := snapshotsByKey(scan2.Endpoints)

	// 1. Membership changes
	var added, removed, common []string
	for key := range endpoints2 {
		if _, ok := endpoints1[key]; !ok {
			added = append(added, key)
		}
	}
	for key := range endpoints1 {
		if _, ok := endpoints2[key]; ok {
			common = append(common, key)
		} else {
			removed = append(removed, key)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	sort.Strings(common)

	// 2. Usage changes for common endpoints
	var becameUnused, becameUsed []string
	var increased, decreased []schema.UsageDelta
	for _, key := range common {
		e1, e2 := endpoints1[key], endpoints2[key]
		switch {
		case e1.CallCount == 0 && e2.CallCount > 0:
			becameUsed = append(becameUsed, key)
		case e1.CallCount > 0 && e2.CallCount == 0:
			becameUnused = append(becameUnused, key)
		case e2.CallCount > e1.CallCount:
			increased = append(increased, schema.UsageDelta{Endpoint: key, Delta: e2.CallCount - e1.CallCount})
		case e2.CallCount < e1.CallCount:
			decreased = append(decreased, schema.UsageDelta{Endpoint: key, Delta: e1.CallCount - e2.CallCount})
		}
	}
	sortUsageDeltas(increased)
	sortUsageDeltas(decreased)

	// 3. Assemble comparison
	return schema.ScanComparison{
		Scan1: scanSummaryOf(&scan1.ScanRecord),
		Scan2: scanSummaryOf(&scan2.ScanRecord),
		Changes: schema.ComparisonChanges{
			AddedEndpoints:   added,
			RemovedEndpoints: removed,
			BecameUnused:     becameUnused,
			BecameUsed:       becameUsed,
			IncreasedUsage:   increased,
			DecreasedUsage:   decreased,
		},
		Summary: schema.ComparisonSummary{
			EndpointsAdded:        len(added),
			EndpointsRemoved:      len(removed),
			EndpointsBecameUnused: len(becameUnused),
			EndpointsBecameUsed:   len(becameUsed),
			UnusedChange:          scan2.UnusedEndpoints - scan1.UnusedEndpoints,
		},
	}
}

// snapshotsByKey indexes endpoint snapshots by their "METHOD /path" key.
func snapshotsByKey(snapshots []schema.EndpointSnapshot) map[string]schema.EndpointSnapshot {
	byKey := make(map[string]schema.EndpointSnapshot, len(snapshots))
	for _, s := range snapshots {
		byKey[schema.EndpointKey(s.Method, s.Path)] = s
	}
	return byKey
}

// sortUsageDeltas orders deltas by magnitude descending, then by endpoint key.
func sortUsageDeltas(deltas []schema.UsageDelta) {
	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].Delta != deltas[j].Delta {
			return deltas[i].Delta > deltas[j].Delta
		}
		return deltas[i].Endpoint < deltas[j].Endpoint
	})
}

// scanSummaryOf extracts the headline numbers from a scan record.
func scanSummaryOf(rec *schema.ScanRecord) schema.ScanSummary {
	return schema.ScanSummary{
		ID:              rec.ID,
		Timestamp:       rec.Timestamp.Format(time.RFC3339),
		TotalEndpoints:  rec.TotalEndpoints,
		UnusedEndpoints: rec.UnusedEndpoints,
	}
}
