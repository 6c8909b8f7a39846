package schema

import "time"

// ScanRecord represents the stored metadata for one scan run.
type ScanRecord struct {
	ID                  int64     `json:"id"`
	Timestamp           time.Time `json:"timestamp"`
	ServiceName         string    `json:"service_name"`
	Repo                string    `json:"repo,omitempty"`
	SpecPath            string    `json:"spec_path,omitempty"`
	LogsPath            string    `json:"logs_path,omitempty"`
	TotalEndpoints      int       `json:"total_endpoints"`
	UnusedEndpoints     int       `json:"unused_endpoints"`
	ScanDurationSeconds float64   `json:"scan_duration_seconds"`
	Success             bool      `json:"success"`
	ErrorMessage        string    `json:"error_message,omitempty"`
}

// UnusedPercentage returns the share of endpoints that saw no traffic,
// rounded to two decimal places. Zero endpoints yields zero.
func (r *ScanRecord) UnusedPercentage() float64 {
	if r.TotalEndpoints == 0 {
		return 0
	}
	return RoundTo(float64(r.UnusedEndpoints)/float64(r.TotalEndpoints)*100, 2)
}

// EndpointSnapshot represents one endpoint's usage state at scan time.
type EndpointSnapshot struct {
	ID              int64      `json:"id"`
	ScanID          int64      `json:"scan_id"`
	Method          string     `json:"method"`
	Path            string     `json:"path"`
	CallCount       int        `json:"call_count"`
	LastSeen        *time.Time `json:"last_seen"`
	UniqueCallers   int        `json:"unique_callers"`
	ConfidenceScore int        `json:"confidence_score"`
}

// Status returns the endpoint status derived from its call count.
func (s *EndpointSnapshot) Status() EndpointStatus {
	if s.CallCount == 0 {
		return UnusedStatus
	}
	return ActiveStatus
}

// ScanDetail pairs a scan record with its endpoint snapshots.
type ScanDetail struct {
	ScanRecord
	Endpoints []EndpointSnapshot `json:"endpoints"`
}
