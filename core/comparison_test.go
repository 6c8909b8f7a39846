package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/graveyard/schema"
)

func TestCompareScans_Classification(t *testing.T) {
	// Endpoints are classified by membership first, then by how their call
	// counts crossed (or did not cross) zero between the two scans.
	scan1 := &schema.ScanDetail{
		ScanRecord: schema.ScanRecord{
			ID:              1,
			Timestamp:       time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
			TotalEndpoints:  6,
			UnusedEndpoints: 2,
		},
		Endpoints: []schema.EndpointSnapshot{
			{Method: "GET", Path: "/api/stable", CallCount: 50},
			{Method: "GET", Path: "/api/fading", CallCount: 7},
			{Method: "GET", Path: "/api/waking", CallCount: 0},
			{Method: "GET", Path: "/api/growing", CallCount: 10},
			{Method: "GET", Path: "/api/shrinking", CallCount: 30},
			{Method: "DELETE", Path: "/api/retired", CallCount: 1},
		},
	}
	scan2 := &schema.ScanDetail{
		ScanRecord: schema.ScanRecord{
			ID:              2,
			Timestamp:       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			TotalEndpoints:  6,
			UnusedEndpoints: 3,
		},
		Endpoints: []schema.EndpointSnapshot{
			{Method: "GET", Path: "/api/stable", CallCount: 50},
			{Method: "GET", Path: "/api/fading", CallCount: 0},
			{Method: "GET", Path: "/api/waking", CallCount: 12},
			{Method: "GET", Path: "/api/growing", CallCount: 25},
			{Method: "GET", Path: "/api/shrinking", CallCount: 18},
			{Method: "POST", Path: "/api/fresh", CallCount: 3},
		},
	}

	cmp := CompareScans(scan1, scan2)

	// Scan summaries
	assert.Equal(t, int64(1), cmp.Scan1.ID)
	assert.Equal(t, "2025-05-01T10:00:00Z", cmp.Scan1.Timestamp)
	assert.Equal(t, int64(2), cmp.Scan2.ID)
	assert.Equal(t, 3, cmp.Scan2.UnusedEndpoints)

	// Membership changes
	assert.Equal(t, []string{"POST /api/fresh"}, cmp.Changes.AddedEndpoints)
	assert.Equal(t, []string{"DELETE /api/retired"}, cmp.Changes.RemovedEndpoints)

	// Zero crossings
	assert.Equal(t, []string{"GET /api/fading"}, cmp.Changes.BecameUnused)
	assert.Equal(t, []string{"GET /api/waking"}, cmp.Changes.BecameUsed)

	// Usage movement carries positive magnitudes in both directions
	assert.Equal(t, []schema.UsageDelta{{Endpoint: "GET /api/growing", Delta: 15}}, cmp.Changes.IncreasedUsage)
	assert.Equal(t, []schema.UsageDelta{{Endpoint: "GET /api/shrinking", Delta: 12}}, cmp.Changes.DecreasedUsage)

	// Summary counts mirror the lists
	assert.Equal(t, 1, cmp.Summary.EndpointsAdded)
	assert.Equal(t, 1, cmp.Summary.EndpointsRemoved)
	assert.Equal(t, 1, cmp.Summary.EndpointsBecameUnused)
	assert.Equal(t, 1, cmp.Summary.EndpointsBecameUsed)
	assert.Equal(t, 1, cmp.Summary.UnusedChange) // 3 - 2
}

func TestCompareScans_StableEndpointExcluded(t *testing.T) {
	detail := func(id int64, count int) *schema.ScanDetail {
		return &schema.ScanDetail{
			ScanRecord: schema.ScanRecord{ID: id, Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
			Endpoints: []schema.EndpointSnapshot{
				{Method: "GET", Path: "/api/stable", CallCount: count},
			},
		}
	}

	cmp := CompareScans(detail(1, 42), detail(2, 42))

	assert.Empty(t, cmp.Changes.AddedEndpoints)
	assert.Empty(t, cmp.Changes.RemovedEndpoints)
	assert.Empty(t, cmp.Changes.BecameUnused)
	assert.Empty(t, cmp.Changes.BecameUsed)
	assert.Empty(t, cmp.Changes.IncreasedUsage)
	assert.Empty(t, cmp.Changes.DecreasedUsage)
	assert.Equal(t, 0, cmp.Summary.UnusedChange)
}

func TestCompareScans_DeltaOrdering(t *testing.T) {
	scan1 := &schema.ScanDetail{
		ScanRecord: schema.ScanRecord{ID: 1, Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		Endpoints: []schema.EndpointSnapshot{
			{Method: "GET", Path: "/api/a", CallCount: 10},
			{Method: "GET", Path: "/api/b", CallCount: 10},
			{Method: "GET", Path: "/api/c", CallCount: 10},
		},
	}
	scan2 := &schema.ScanDetail{
		ScanRecord: schema.ScanRecord{ID: 2, Timestamp: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		Endpoints: []schema.EndpointSnapshot{
			{Method: "GET", Path: "/api/a", CallCount: 15},
			{Method: "GET", Path: "/api/b", CallCount: 110},
			{Method: "GET", Path: "/api/c", CallCount: 15},
		},
	}

	cmp := CompareScans(scan1, scan2)

	// Largest movement first; ties break on the endpoint key.
	assert.Equal(t, []schema.UsageDelta{
		{Endpoint: "GET /api/b", Delta: 100},
		{Endpoint: "GET /api/a", Delta: 5},
		{Endpoint: "GET /api/c", Delta: 5},
	}, cmp.Changes.IncreasedUsage)
}

func TestCompareScans_EmptyScans(t *testing.T) {
	empty := func(id int64) *schema.ScanDetail {
		return &schema.ScanDetail{
			ScanRecord: schema.ScanRecord{ID: id, Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		}
	}

	cmp := CompareScans(empty(1), empty(2))
	assert.Empty(t, cmp.Changes.AddedEndpoints)
	assert.Empty(t, cmp.Changes.RemovedEndpoints)
	assert.Equal(t, 0, cmp.Summary.EndpointsAdded)
}
