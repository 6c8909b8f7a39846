// Package parquet provides data structures and functions for exporting scan
// history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/graveyard/schema"
	"github.com/parquet-go/parquet-go"
)

// ScanRow represents a single scan run with metadata.
// This struct maps to the graveyard_scans database table.
type ScanRow struct {
	// ScanID is the unique identifier for this scan
	ScanID int64 `parquet:"scan_id,snappy"`

	// Timestamp is when the scan ran (stored as TIMESTAMP with nanosecond precision)
	Timestamp time.Time `parquet:"timestamp,snappy"`

	// ServiceName is the service that was scanned
	ServiceName string `parquet:"service_name,snappy"`

	// Repo is the source repository of the service (nullable)
	Repo *string `parquet:"repo,optional,snappy"`

	// SpecPath is the OpenAPI spec file that was analyzed (nullable)
	SpecPath *string `parquet:"spec_path,optional,snappy"`

	// LogsPath is the log file or directory that was analyzed (nullable)
	LogsPath *string `parquet:"logs_path,optional,snappy"`

	// TotalEndpoints is the number of endpoints found in the spec
	TotalEndpoints int32 `parquet:"total_endpoints,snappy"`

	// UnusedEndpoints is the number of endpoints with zero observed calls
	UnusedEndpoints int32 `parquet:"unused_endpoints,snappy"`

	// ScanDurationSeconds is how long the scan took
	ScanDurationSeconds float64 `parquet:"scan_duration_seconds,snappy"`

	// Success indicates whether the scan completed without errors
	Success bool `parquet:"success,snappy"`

	// ErrorMessage holds the failure reason for unsuccessful scans (nullable)
	ErrorMessage *string `parquet:"error_message,optional,snappy"`
}

// EndpointSnapshotRow represents one endpoint's usage state at scan time,
// flattened with its scan's service name and timestamp.
// This struct maps to the graveyard_endpoint_snapshots database table.
type EndpointSnapshotRow struct {
	// ScanID references the parent scan
	ScanID int64 `parquet:"scan_id,snappy"`

	// ServiceName is the service the snapshot belongs to
	ServiceName string `parquet:"service_name,snappy"`

	// ScanTime is when the snapshot was taken (stored as TIMESTAMP with nanosecond precision)
	ScanTime time.Time `parquet:"scan_time,snappy"`

	// Method is the HTTP method of the endpoint
	Method string `parquet:"method,snappy"`

	// Path is the endpoint path template
	Path string `parquet:"path,snappy"`

	// CallCount is the number of calls observed in the log window
	CallCount int32 `parquet:"call_count,snappy"`

	// LastSeen is the most recent observed call (nullable)
	LastSeen *time.Time `parquet:"last_seen,optional,snappy"`

	// UniqueCallers is the number of distinct callers observed
	UniqueCallers int32 `parquet:"unique_callers,snappy"`

	// ConfidenceScore is the unused-confidence score (0-100)
	ConfidenceScore int32 `parquet:"confidence_score,snappy"`
}

// WriteScansParquet writes a slice of ScanRow structs to a Parquet file.
func WriteScansParquet(data []ScanRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ScanRow struct tags
	writer := parquet.NewGenericWriter[ScanRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteEndpointSnapshotsParquet writes a slice of EndpointSnapshotRow structs
// to a Parquet file.
func WriteEndpointSnapshotsParquet(data []EndpointSnapshotRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the EndpointSnapshotRow struct tags
	writer := parquet.NewGenericWriter[EndpointSnapshotRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertScanRecords converts schema.ScanRecord to ScanRow for Parquet export.
func ConvertScanRecords(records []schema.ScanRecord) []ScanRow {
	result := make([]ScanRow, len(records))
	for i, record := range records {
		result[i] = ScanRow{
			ScanID:              record.ID,
			Timestamp:           record.Timestamp,
			ServiceName:         record.ServiceName,
			Repo:                optionalString(record.Repo),
			SpecPath:            optionalString(record.SpecPath),
			LogsPath:            optionalString(record.LogsPath),
			TotalEndpoints:      int32(record.TotalEndpoints),
			UnusedEndpoints:     int32(record.UnusedEndpoints),
			ScanDurationSeconds: record.ScanDurationSeconds,
			Success:             record.Success,
			ErrorMessage:        optionalString(record.ErrorMessage),
		}
	}
	return result
}

// ConvertSnapshotRecords converts schema.SnapshotRecord to EndpointSnapshotRow
// for Parquet export.
func ConvertSnapshotRecords(records []schema.SnapshotRecord) []EndpointSnapshotRow {
	result := make([]EndpointSnapshotRow, len(records))
	for i, record := range records {
		result[i] = EndpointSnapshotRow{
			ScanID:          record.ScanID,
			ServiceName:     record.ServiceName,
			ScanTime:        record.ScanTime,
			Method:          record.Method,
			Path:            record.Path,
			CallCount:       record.CallCount,
			LastSeen:        record.LastSeen,
			UniqueCallers:   record.UniqueCallers,
			ConfidenceScore: record.ConfidenceScore,
		}
	}
	return result
}

// optionalString maps empty strings to nil for nullable Parquet columns.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MockFetchScans generates sample ScanRow data for demonstration.
func MockFetchScans() []ScanRow {
	now := time.Now()
	repo1 := "acme/payments"
	spec1 := "openapi.yaml"
	logs1 := "logs/access.log"
	repo2 := "acme/billing"
	spec2 := "api/swagger.json"
	errMsg3 := "spec not found"

	return []ScanRow{
		{
			ScanID:              1,
			Timestamp:           now.Add(-48 * time.Hour),
			ServiceName:         "payments",
			Repo:                &repo1,
			SpecPath:            &spec1,
			LogsPath:            &logs1,
			TotalEndpoints:      24,
			UnusedEndpoints:     5,
			ScanDurationSeconds: 1.8,
			Success:             true,
		},
		{
			ScanID:              2,
			Timestamp:           now.Add(-24 * time.Hour),
			ServiceName:         "billing",
			Repo:                &repo2,
			SpecPath:            &spec2,
			LogsPath:            nil, // Discovered at scan time - nullable field
			TotalEndpoints:      12,
			UnusedEndpoints:     1,
			ScanDurationSeconds: 0.9,
			Success:             true,
		},
		{
			ScanID:              3,
			Timestamp:           now.Add(-1 * time.Hour),
			ServiceName:         "inventory",
			Repo:                nil, // Local scan - nullable field
			SpecPath:            nil,
			LogsPath:            nil,
			TotalEndpoints:      0,
			UnusedEndpoints:     0,
			ScanDurationSeconds: 0.1,
			Success:             false,
			ErrorMessage:        &errMsg3,
		},
	}
}

// MockFetchEndpointSnapshots generates sample EndpointSnapshotRow data for demonstration.
func MockFetchEndpointSnapshots() []EndpointSnapshotRow {
	now := time.Now()
	seen1 := now.Add(-72 * time.Hour)
	seen2 := now.Add(-30 * time.Hour)

	return []EndpointSnapshotRow{
		{
			ScanID:          1,
			ServiceName:     "payments",
			ScanTime:        now.Add(-48 * time.Hour),
			Method:          "GET",
			Path:            "/payments/{id}",
			CallCount:       1540,
			LastSeen:        &seen1,
			UniqueCallers:   12,
			ConfidenceScore: 10,
		},
		{
			ScanID:          1,
			ServiceName:     "payments",
			ScanTime:        now.Add(-48 * time.Hour),
			Method:          "DELETE",
			Path:            "/payments/{id}/legacy",
			CallCount:       0,
			LastSeen:        nil, // Never called - nullable field
			UniqueCallers:   0,
			ConfidenceScore: 100,
		},
		{
			ScanID:          2,
			ServiceName:     "billing",
			ScanTime:        now.Add(-24 * time.Hour),
			Method:          "POST",
			Path:            "/invoices",
			CallCount:       87,
			LastSeen:        &seen2,
			UniqueCallers:   4,
			ConfidenceScore: 45,
		},
	}
}
