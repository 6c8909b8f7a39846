package schema

// ServiceConfig describes one service's scan inputs within a fleet.
type ServiceConfig struct {
	Name string `yaml:"name" json:"name"`
	Spec string `yaml:"spec" json:"spec"`
	Logs string `yaml:"logs,omitempty" json:"logs,omitempty"`
	Repo string `yaml:"repo,omitempty" json:"repo,omitempty"`
}

// MultiServiceConfig describes a fleet of services scanned together.
type MultiServiceConfig struct {
	Org      string          `yaml:"org,omitempty" json:"org,omitempty"`
	Services []ServiceConfig `yaml:"services" json:"services"`
}

// ServiceScanOutcome represents one service's result in a multi-service scan.
type ServiceScanOutcome struct {
	Service         string                `json:"service"`
	Repo            string                `json:"repo,omitempty"`
	Status          ScanStatus            `json:"status"`
	Error           string                `json:"error,omitempty"`
	EndpointsTotal  int                   `json:"endpoints_total"`
	EndpointsUnused int                   `json:"endpoints_unused"`
	Results         []EndpointUsageResult `json:"results,omitempty"`
}

// MultiScanSummary aggregates counts across every scanned service.
type MultiScanSummary struct {
	TotalServices    int     `json:"total_services"`
	SuccessfulScans  int     `json:"successful_scans"`
	FailedScans      int     `json:"failed_scans"`
	TotalEndpoints   int     `json:"total_endpoints"`
	TotalUnused      int     `json:"total_unused"`
	UnusedPercentage float64 `json:"unused_percentage"`
}

// MultiScanReport is the aggregated output of a multi-service scan.
// DuplicateEndpoints maps an endpoint key to the services that declare it.
type MultiScanReport struct {
	Summary            MultiScanSummary     `json:"summary"`
	DuplicateEndpoints map[string][]string  `json:"duplicate_endpoints"`
	DuplicateCount     int                  `json:"duplicate_count"`
	Services           []ServiceScanOutcome `json:"services"`
}
