// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteUsage prints endpoint usage results using the configured output format.
func (ow *OutWriter) WriteUsage(results []schema.EndpointUsageResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteUsageResults(w, results, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteHistory prints stored scan records using the configured output format.
func (ow *OutWriter) WriteHistory(scans []schema.ScanRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHistoryResults(w, scans, cfg)
	}, successMessage(cfg.Output))
}

// WriteComparison prints a scan comparison using the configured output format.
func (ow *OutWriter) WriteComparison(comparison *schema.ScanComparison, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComparisonResults(w, comparison, cfg)
	}, successMessage(cfg.Output))
}

// WriteTrend prints a service trend analysis using the configured output format.
func (ow *OutWriter) WriteTrend(trend *schema.TrendResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTrendResults(w, trend, cfg)
	}, successMessage(cfg.Output))
}

// WriteCost prints a cost savings estimate using the configured output format.
func (ow *OutWriter) WriteCost(serviceName string, savings *schema.SavingsEstimate, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCostResults(w, serviceName, savings, cfg)
	}, successMessage(cfg.Output))
}

// WriteStatus prints the history store status using the configured output format.
func (ow *OutWriter) WriteStatus(status *schema.HistoryStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStatusResults(w, status, cfg)
	}, successMessage(cfg.Output))
}

// successMessage returns the file-written notice matching the output format.
func successMessage(output schema.OutputMode) string {
	switch output {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.CSVOut:
		return "Wrote CSV"
	default:
		return "Wrote table"
	}
}
