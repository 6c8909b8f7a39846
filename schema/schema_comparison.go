package schema

// ScanSummary holds the headline numbers for one side of a comparison.
type ScanSummary struct {
	ID              int64  `json:"id"`
	Timestamp       string `json:"timestamp"`
	TotalEndpoints  int    `json:"total_endpoints"`
	UnusedEndpoints int    `json:"unused_endpoints"`
}

// UsageDelta records a call-count change for one endpoint between scans.
type UsageDelta struct {
	Endpoint string `json:"endpoint"` // "METHOD /path" key
	Delta    int    `json:"delta"`    // Positive means more calls in the newer scan
}

// ComparisonChanges groups the endpoint-level differences between two scans.
type ComparisonChanges struct {
	AddedEndpoints   []string     `json:"added_endpoints"`   // Present only in the newer scan
	RemovedEndpoints []string     `json:"removed_endpoints"` // Present only in the older scan
	BecameUnused     []string     `json:"became_unused"`     // Had traffic, now has none
	BecameUsed       []string     `json:"became_used"`       // Had none, now has traffic
	IncreasedUsage   []UsageDelta `json:"increased_usage"`
	DecreasedUsage   []UsageDelta `json:"decreased_usage"`
}

// ComparisonSummary has high-level counts for a scan comparison.
type ComparisonSummary struct {
	EndpointsAdded        int `json:"endpoints_added"`
	EndpointsRemoved      int `json:"endpoints_removed"`
	EndpointsBecameUnused int `json:"endpoints_became_unused"`
	EndpointsBecameUsed   int `json:"endpoints_became_used"`
	UnusedChange          int `json:"unused_change"` // Newer unused count minus older
}

// ScanComparison holds the full comparison between two stored scans.
// Scan1 is the older scan and Scan2 the newer one.
type ScanComparison struct {
	Scan1   ScanSummary       `json:"scan1"`
	Scan2   ScanSummary       `json:"scan2"`
	Changes ComparisonChanges `json:"changes"`
	Summary ComparisonSummary `json:"summary"`
}
