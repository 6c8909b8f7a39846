package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/graveyard/schema"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// placeholder returns the bind parameter syntax for the active backend.
// PostgreSQL uses positional $N markers; MySQL and SQLite use ?.
func (ss *ScanStoreImpl) placeholder(n int) string {
	if ss.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// formatTime converts a timestamp into the representation the backend stores.
// SQLite has no native time type, so timestamps are stored as RFC 3339 text.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}

// scanRecord reads one scan row in scanColumns order.
func (ss *ScanStoreImpl) scanRecord(row rowScanner) (schema.ScanRecord, error) {
	var record schema.ScanRecord
	var repo, specPath, logsPath, errorMessage sql.NullString
	var duration sql.NullFloat64

	switch ss.backend {
	case schema.SQLiteBackend:
		var timestampStr string
		if err := row.Scan(&record.ID, &timestampStr, &record.ServiceName,
			&repo, &specPath, &logsPath, &record.TotalEndpoints, &record.UnusedEndpoints,
			&duration, &record.Success, &errorMessage); err != nil {
			return record, err
		}
		ts, err := time.Parse(time.RFC3339Nano, timestampStr)
		if err != nil {
			return record, fmt.Errorf("failed to parse scan timestamp: %w", err)
		}
		record.Timestamp = ts
	default:
		if err := row.Scan(&record.ID, &record.Timestamp, &record.ServiceName,
			&repo, &specPath, &logsPath, &record.TotalEndpoints, &record.UnusedEndpoints,
			&duration, &record.Success, &errorMessage); err != nil {
			return record, err
		}
	}

	record.Repo = repo.String
	record.SpecPath = specPath.String
	record.LogsPath = logsPath.String
	record.ScanDurationSeconds = duration.Float64
	record.ErrorMessage = errorMessage.String
	return record, nil
}

// scanSnapshot reads one endpoint snapshot row in snapshotColumns order.
func (ss *ScanStoreImpl) scanSnapshot(row rowScanner) (schema.EndpointSnapshot, error) {
	var snap schema.EndpointSnapshot

	switch ss.backend {
	case schema.SQLiteBackend:
		var lastSeen sql.NullString
		if err := row.Scan(&snap.ID, &snap.ScanID, &snap.Method, &snap.Path,
			&snap.CallCount, &lastSeen, &snap.UniqueCallers, &snap.ConfidenceScore); err != nil {
			return snap, err
		}
		if lastSeen.Valid {
			seen, err := time.Parse(time.RFC3339Nano, lastSeen.String)
			if err != nil {
				return snap, fmt.Errorf("failed to parse last_seen: %w", err)
			}
			snap.LastSeen = &seen
		}
	default:
		var lastSeen sql.NullTime
		if err := row.Scan(&snap.ID, &snap.ScanID, &snap.Method, &snap.Path,
			&snap.CallCount, &lastSeen, &snap.UniqueCallers, &snap.ConfidenceScore); err != nil {
			return snap, err
		}
		if lastSeen.Valid {
			seen := lastSeen.Time
			snap.LastSeen = &seen
		}
	}

	return snap, nil
}

// scanIDAndTime reads an (id, timestamp) row.
func (ss *ScanStoreImpl) scanIDAndTime(row rowScanner) (int64, time.Time, error) {
	var id int64

	if ss.backend == schema.SQLiteBackend {
		var timestampStr string
		if err := row.Scan(&id, &timestampStr); err != nil {
			return 0, time.Time{}, err
		}
		ts, err := time.Parse(time.RFC3339Nano, timestampStr)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to parse scan timestamp: %w", err)
		}
		return id, ts, nil
	}

	var ts time.Time
	if err := row.Scan(&id, &ts); err != nil {
		return 0, time.Time{}, err
	}
	return id, ts, nil
}
