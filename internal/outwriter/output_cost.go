package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCostResults outputs a cost savings estimate, dispatching based on the
// output format configured.
func WriteCostResults(w io.Writer, serviceName string, savings *schema.SavingsEstimate, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, savings); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, []string{"method", "path", "monthly_savings_usd"}, func(cw *csv.Writer) error {
			return writeCSVResultsForCost(cw, savings)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeCostText(w, serviceName, savings)
	}
	return nil
}

// writeCostText writes the human-readable cost analysis with a savings table.
func writeCostText(w io.Writer, serviceName string, savings *schema.SavingsEstimate) error {
	if err := printSection(w, fmt.Sprintf("Cost Analysis: %s", serviceName)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nUnused endpoints: %d\n\n", savings.TotalUnusedEndpoints); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Timeframe", "Savings"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"Monthly", fmt.Sprintf("$%.2f", savings.MonthlySavingsUSD)},
		{"Annual", fmt.Sprintf("$%.2f", savings.AnnualSavingsUSD)},
		{"3-Year", fmt.Sprintf("$%.2f", savings.ThreeYearSavingsUSD)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	a := &savings.Assumptions
	if _, err := fmt.Fprintf(w, "\nAssumptions:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Cost per million requests: $%.2f\n", a.CostPerMillionRequests); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Infrastructure cost per endpoint: $%.2f/month\n", a.InfrastructureCostPerEndpoint)
	return err
}

// writeCSVResultsForCost writes the per-endpoint savings breakdown in CSV format.
func writeCSVResultsForCost(w *csv.Writer, savings *schema.SavingsEstimate) error {
	for _, item := range savings.Breakdown {
		rec := []string{
			item.Method,
			item.Path,
			strconv.FormatFloat(item.MonthlySavingsUSD, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
