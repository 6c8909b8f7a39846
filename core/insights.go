package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/outwriter"
	"github.com/huangsam/graveyard/schema"
)

// Sentinel errors for the history-backed analytics commands.
var (
	ErrHistoryUnavailable = errors.New("scan history store is not initialized")
	ErrNoScansForService  = errors.New("no scans found for service")
)

// scanStoreOf unwraps the history manager into a usable store.
func scanStoreOf(mgr contract.HistoryManager) (contract.ScanStore, error) {
	if mgr == nil {
		return nil, ErrHistoryUnavailable
	}
	store := mgr.GetScanStore()
	if store == nil {
		return nil, ErrHistoryUnavailable
	}
	return store, nil
}

// GetTrendResults loads a service's recent scan history and summarizes it
// into a trend. The raw scans come back too, so callers can run anomaly
// detection over the same window without a second query.
func GetTrendResults(cfg *contract.Config, mgr contract.HistoryManager) (*schema.TrendResult, []schema.ScanRecord, error) {
	store, err := scanStoreOf(mgr)
	if err != nil {
		return nil, nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -cfg.TrendDays)
	scans, err := store.GetScansSince(cfg.ServiceName, since)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading scan history: %w", err)
	}

	trend, err := BuildTrend(scans, cfg.ServiceName, cfg.TrendDays)
	if err != nil {
		return nil, nil, err
	}
	return trend, scans, nil
}

// ExecuteTrends prints the usage trend for a service, followed by any
// usage anomalies found in the same window.
func ExecuteTrends(cfg *contract.Config, mgr contract.HistoryManager) error {
	trend, scans, err := GetTrendResults(cfg, mgr)
	if err != nil {
		return err
	}

	if err := outwriter.NewOutWriter().WriteTrend(trend, cfg); err != nil {
		return err
	}

	if cfg.Output == schema.TextOut && cfg.OutputFile == "" {
		printAnomalies(DetectAnomalies(scans, DefaultAnomalyThreshold))
	}
	return nil
}

// printAnomalies lists scans whose unused counts fall outside the expected
// band. Quiet when there is nothing to report.
func printAnomalies(anomalies []schema.Anomaly) {
	if len(anomalies) == 0 {
		return
	}

	fmt.Printf("\nAnomalies (%d):\n", len(anomalies))
	for _, a := range anomalies {
		fmt.Printf("  Scan #%d at %s: %d unused, expected %s (z=%v, %s)\n",
			a.ScanID, a.Timestamp, a.UnusedEndpoints, a.ExpectedRange, a.ZScore, a.Severity)
	}
}

// GetCompareResults loads two stored scans and diffs them. A missing scan
// ID is an error naming the offending ID.
func GetCompareResults(mgr contract.HistoryManager, scan1ID, scan2ID int64) (*schema.ScanComparison, error) {
	store, err := scanStoreOf(mgr)
	if err != nil {
		return nil, err
	}

	scan1, err := store.GetScanByID(scan1ID)
	if err != nil {
		return nil, fmt.Errorf("error loading scan %d: %w", scan1ID, err)
	}
	if scan1 == nil {
		return nil, fmt.Errorf("scan %d not found", scan1ID)
	}

	scan2, err := store.GetScanByID(scan2ID)
	if err != nil {
		return nil, fmt.Errorf("error loading scan %d: %w", scan2ID, err)
	}
	if scan2 == nil {
		return nil, fmt.Errorf("scan %d not found", scan2ID)
	}

	comparison := CompareScans(scan1, scan2)
	return &comparison, nil
}

// ExecuteCompare diffs two stored scans and prints the result.
func ExecuteCompare(cfg *contract.Config, mgr contract.HistoryManager, scan1ID, scan2ID int64) error {
	comparison, err := GetCompareResults(mgr, scan1ID, scan2ID)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteComparison(comparison, cfg)
}

// GetCostResults estimates the savings from removing the unused endpoints
// in a service's latest scan. A service with no scan history yields
// ErrNoScansForService.
func GetCostResults(cfg *contract.Config, mgr contract.HistoryManager) (*schema.SavingsEstimate, error) {
	store, err := scanStoreOf(mgr)
	if err != nil {
		return nil, err
	}

	scan, err := store.GetLatestScan(cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("error loading latest scan: %w", err)
	}
	if scan == nil {
		return nil, ErrNoScansForService
	}

	savings := NewCostCalculator(0).SavingsFromSnapshots(scan.Endpoints)
	return &savings, nil
}

// ExecuteCost prints the savings estimate for a service's latest scan.
// An unscanned service gets a notice rather than a failure.
func ExecuteCost(cfg *contract.Config, mgr contract.HistoryManager) error {
	savings, err := GetCostResults(cfg, mgr)
	if errors.Is(err, ErrNoScansForService) {
		fmt.Printf("No scans found for service: %s\n", cfg.ServiceName)
		return nil
	}
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCost(cfg.ServiceName, savings, cfg)
}
