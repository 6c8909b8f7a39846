package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for scan history.
	DatabaseBackend string

	// EndpointStatus represents whether an endpoint still sees traffic.
	EndpointStatus string

	// TrendDirection represents how a metric moved across a time window.
	TrendDirection string

	// AnomalySeverity represents how far a scan deviates from the norm.
	AnomalySeverity string

	// ScanStatus represents the outcome of a single service scan.
	ScanStatus string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All endpoint statuses supported.
const (
	UnusedStatus EndpointStatus = "unused"
	ActiveStatus EndpointStatus = "active"
)

// All trend directions supported.
const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// All anomaly severities supported.
const (
	SeverityHigh   AnomalySeverity = "high"
	SeverityMedium AnomalySeverity = "medium"
)

// All scan statuses supported.
const (
	ScanSuccess ScanStatus = "success"
	ScanFailure ScanStatus = "error"
)

// HTTPMethods lists the operations recognized in an OpenAPI path item,
// in extraction order.
var HTTPMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD", "TRACE"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidHTTPMethods lists all recognized HTTP methods.
var ValidHTTPMethods = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "PATCH": {},
	"DELETE": {}, "OPTIONS": {}, "HEAD": {}, "TRACE": {},
}
