package schema

import "time"

// HistoryStatus represents the status of the scan history store.
type HistoryStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalScans     int              `json:"total_scans"`
	LastScanID     int64            `json:"last_scan_id"`
	LastScanTime   time.Time        `json:"last_scan_time"`
	OldestScanTime time.Time        `json:"oldest_scan_time"`
	TotalSnapshots int              `json:"total_snapshots"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// SnapshotRecord represents a flattened scan and snapshot row used by the
// history export path.
type SnapshotRecord struct {
	ScanID          int64
	ServiceName     string
	ScanTime        time.Time
	Method          string
	Path            string
	CallCount       int32
	LastSeen        *time.Time
	UniqueCallers   int32
	ConfidenceScore int32
}
