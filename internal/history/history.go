// Package history persists scan results across runs.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
)

// ScanStoreManager manages the scan history store instance.
type ScanStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	scans        contract.ScanStore
}

var _ contract.HistoryManager = &ScanStoreManager{} // Compile-time check

// GetScanStore returns the scan history store.
func (mgr *ScanStoreManager) GetScanStore() contract.ScanStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.scans
}

// Global Manager instance for main logic.
var (
	Manager   = &ScanStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitHistory uses sync.Once to safely initialize the global scan store.
func InitHistory(backend schema.DatabaseBackend, connStr string) error { // called in main entrypoint
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			backend = schema.SQLiteBackend
		}

		store, err := NewScanStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize scan history: %w", err)
			return
		}

		// Assign to global manager
		Manager.scans = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseHistory should be called on application shutdown.
func CloseHistory() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.scans != nil {
			_ = Manager.scans.Close()
		}
	})
}

// ClearHistory removes all stored history for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the history tables.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropHistoryTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropHistoryTables("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// dropHistoryTables connects to the SQL database and drops the history tables.
func dropHistoryTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	// Snapshots reference scans, so they go first
	for _, table := range []string{endpointSnapshotsTable, graveyardScansTable} {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}
