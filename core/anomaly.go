package core

import (
	"fmt"
	"math"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// DefaultAnomalyThreshold is the z-score cutoff used when callers have no
// reason to pick their own.
const DefaultAnomalyThreshold = 2.0

// minScansForAnomalies is the smallest history that gives the mean and
// standard deviation any meaning.
const minScansForAnomalies = 5

// DetectAnomalies flags scans whose unused-endpoint count sits more than
// thresholdStd standard deviations from the window mean. The scans must be
// ordered oldest first. Fewer than five scans returns no anomalies, as does
// a perfectly flat history.
func DetectAnomalies(scans []schema.ScanRecord, thresholdStd float64) []schema.Anomaly {
	if len(scans) < minScansForAnomalies {
		return nil
	}

	// Population mean and standard deviation of unused counts
	var sum float64
	for _, scan := range scans {
		sum += float64(scan.UnusedEndpoints)
	}
	mean := sum / float64(len(scans))

	var variance float64
	for _, scan := range scans {
		diff := float64(scan.UnusedEndpoints) - mean
		variance += diff * diff
	}
	variance /= float64(len(scans))
	stdDev := math.Sqrt(variance)

	var anomalies []schema.Anomaly
	for _, scan := range scans {
		zScore := 0.0
		if stdDev > 0 {
			zScore = (float64(scan.UnusedEndpoints) - mean) / stdDev
		}
		if math.Abs(zScore) <= thresholdStd {
			continue
		}

		severity := schema.SeverityMedium
		if math.Abs(zScore) > 3 {
			severity = schema.SeverityHigh
		}
		direction := "low"
		if zScore > 0 {
			direction = "high"
		}

		anomalies = append(anomalies, schema.Anomaly{
			ScanID:          scan.ID,
			Timestamp:       scan.Timestamp.Format(time.RFC3339),
			UnusedEndpoints: scan.UnusedEndpoints,
			ExpectedRange:   fmt.Sprintf("%.0f-%.0f", mean-thresholdStd*stdDev, mean+thresholdStd*stdDev),
			ZScore:          schema.RoundTo(zScore, 2),
			Severity:        severity,
			Description:     fmt.Sprintf("Unusually %s number of unused endpoints", direction),
		})
	}
	return anomalies
}
