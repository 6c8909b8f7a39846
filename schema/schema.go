// Package schema has configs, models and global variables for all parts of graveyard.
package schema

import "time"

// EndpointTemplate represents one operation declared in an OpenAPI document.
// Identity is the (method, path) pair. The path may contain templated
// segments such as {petId} that match any concrete value.
type EndpointTemplate struct {
	Method string `json:"method" yaml:"method"` // Upper-cased HTTP method, e.g. GET
	Path   string `json:"path" yaml:"path"`     // Template path, e.g. /pets/{petId}
}

// LogEntry represents one decoded line of a newline-delimited JSON access log.
// Caller identity may arrive under any of the caller, user or client_id keys;
// ResolveCaller applies the priority order.
type LogEntry struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp,omitempty"`
	Caller    string `json:"caller,omitempty"`
	User      string `json:"user,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
}

// ResolveCaller returns the caller identity for the entry, preferring
// caller, then user, then client_id. Empty means no identity was logged.
func (e *LogEntry) ResolveCaller() string {
	if e.Caller != "" {
		return e.Caller
	}
	if e.User != "" {
		return e.User
	}
	return e.ClientID
}

// EndpointUsageResult represents the scored outcome for a single endpoint
// template after all logs have been consumed.
type EndpointUsageResult struct {
	Method            string     `json:"method"`             // Upper-cased HTTP method
	Path              string     `json:"path"`               // Template path from the spec
	CallCount         int        `json:"call_count"`         // Matched calls across all logs
	LastSeen          *time.Time `json:"last_seen"`          // Most recent matched call, nil if never seen
	UniqueCallers     int        `json:"unique_callers"`     // Distinct caller identities, full set size
	Callers           []string   `json:"callers"`            // Sorted sample of callers, capped for display
	ConfidenceScore   int        `json:"confidence_score"`   // Unused-confidence score (0-100)
	ConfidenceReasons []string   `json:"confidence_reasons"` // Human-readable scoring explanations
}

// IsUnused reports whether the endpoint never appeared in the logs.
func (r *EndpointUsageResult) IsUnused() bool {
	return r.CallCount == 0
}

// Status returns the endpoint status derived from its call count.
func (r *EndpointUsageResult) Status() EndpointStatus {
	if r.IsUnused() {
		return UnusedStatus
	}
	return ActiveStatus
}
