package core

import (
	"errors"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// ErrNoScansInPeriod reports an empty scan history for the requested
// service and window. The HTTP and MCP surfaces map it to a client error.
var ErrNoScansInPeriod = errors.New("no scans found in time period")

// BuildTrend summarizes a service's scan history into a time series with
// first-to-last movement and window averages. The scans must already be
// filtered to the service and window, ordered oldest first; pass what the
// store's GetScansSince returns. An empty slice yields ErrNoScansInPeriod.
func BuildTrend(scans []schema.ScanRecord, service string, days int) (*schema.TrendResult, error) {
	if len(scans) == 0 {
		return nil, ErrNoScansInPeriod
	}

	timeSeries := make([]schema.TrendPoint, 0, len(scans))
	var sumTotal, sumUnused int
	for _, scan := range scans {
		timeSeries = append(timeSeries, schema.TrendPoint{
			Timestamp:        scan.Timestamp.Format(time.RFC3339),
			TotalEndpoints:   scan.TotalEndpoints,
			UnusedEndpoints:  scan.UnusedEndpoints,
			UnusedPercentage: scan.UnusedPercentage(),
		})
		sumTotal += scan.TotalEndpoints
		sumUnused += scan.UnusedEndpoints
	}

	first, last := scans[0], scans[len(scans)-1]
	endpointChange := last.TotalEndpoints - first.TotalEndpoints
	unusedChange := last.UnusedEndpoints - first.UnusedEndpoints

	avgTotal := float64(sumTotal) / float64(len(scans))
	avgUnused := float64(sumUnused) / float64(len(scans))
	avgPercentage := 0.0
	if avgTotal > 0 {
		avgPercentage = schema.RoundTo(100*avgUnused/avgTotal, 2)
	}

	return &schema.TrendResult{
		Service:    service,
		PeriodDays: days,
		ScansCount: len(scans),
		TimeSeries: timeSeries,
		Trends: schema.TrendDeltas{
			EndpointChange: endpointChange,
			UnusedChange:   unusedChange,
			EndpointTrend:  trendDirection(endpointChange),
			UnusedTrend:    trendDirection(unusedChange),
		},
		Averages: schema.TrendAverages{
			AvgTotalEndpoints:   schema.RoundTo(avgTotal, 2),
			AvgUnusedEndpoints:  schema.RoundTo(avgUnused, 2),
			AvgUnusedPercentage: avgPercentage,
		},
		Current: schema.TrendCurrent{
			TotalEndpoints:   last.TotalEndpoints,
			UnusedEndpoints:  last.UnusedEndpoints,
			UnusedPercentage: last.UnusedPercentage(),
		},
	}, nil
}

// trendDirection classifies a first-to-last delta.
func trendDirection(change int) schema.TrendDirection {
	switch {
	case change > 0:
		return schema.TrendIncreasing
	case change < 0:
		return schema.TrendDecreasing
	default:
		return schema.TrendStable
	}
}
