package schema

// TrendPoint represents one scan's totals within a service time series.
type TrendPoint struct {
	Timestamp        string  `json:"timestamp"`
	TotalEndpoints   int     `json:"total_endpoints"`
	UnusedEndpoints  int     `json:"unused_endpoints"`
	UnusedPercentage float64 `json:"unused_percentage"`
}

// TrendDeltas classifies the first-to-last movement within the window.
type TrendDeltas struct {
	EndpointChange int            `json:"endpoint_change"`
	UnusedChange   int            `json:"unused_change"`
	EndpointTrend  TrendDirection `json:"endpoint_trend"`
	UnusedTrend    TrendDirection `json:"unused_trend"`
}

// TrendAverages holds window-wide averages across all scans in the series.
type TrendAverages struct {
	AvgTotalEndpoints   float64 `json:"avg_total_endpoints"`
	AvgUnusedEndpoints  float64 `json:"avg_unused_endpoints"`
	AvgUnusedPercentage float64 `json:"avg_unused_percentage"`
}

// TrendCurrent holds the most recent scan's state in the series.
type TrendCurrent struct {
	TotalEndpoints   int     `json:"total_endpoints"`
	UnusedEndpoints  int     `json:"unused_endpoints"`
	UnusedPercentage float64 `json:"unused_percentage"`
}

// TrendResult holds the usage trend for one service over a lookback window.
type TrendResult struct {
	Service    string        `json:"service"`
	PeriodDays int           `json:"period_days"`
	ScansCount int           `json:"scans_count"`
	TimeSeries []TrendPoint  `json:"time_series"`
	Trends     TrendDeltas   `json:"trends"`
	Averages   TrendAverages `json:"averages"`
	Current    TrendCurrent  `json:"current"`
}

// Anomaly flags a scan whose unused count deviates from the recent norm.
type Anomaly struct {
	ScanID          int64           `json:"scan_id"`
	Timestamp       string          `json:"timestamp"`
	UnusedEndpoints int             `json:"unused_endpoints"`
	ExpectedRange   string          `json:"expected_range"` // "low-high" band from mean and stddev
	ZScore          float64         `json:"z_score"`
	Severity        AnomalySeverity `json:"severity"`
	Description     string          `json:"description"`
}
