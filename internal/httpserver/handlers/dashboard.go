package handlers

import (
	"net/http"

	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
	"github.com/huangsam/graveyard/schema"
)

type dashboardSummary struct {
	Services         int     `json:"services"`
	TotalEndpoints   int     `json:"total_endpoints"`
	UnusedEndpoints  int     `json:"unused_endpoints"`
	UnusedPercentage float64 `json:"unused_percentage"`
	MonthlySavings   float64 `json:"monthly_savings"`
	TotalScans       int     `json:"total_scans"`
}

// DashboardSummary aggregates the latest scan of every service into one
// fleet-wide summary.
func DashboardSummary(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := d.Scans.GetServices()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var totalEndpoints, totalUnused, totalScans int
		for _, service := range services {
			scans, err := d.Scans.GetScans(service, 1)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if len(scans) == 0 {
				continue
			}
			totalEndpoints += scans[0].TotalEndpoints
			totalUnused += scans[0].UnusedEndpoints
			totalScans++
		}

		unusedPct := 0.0
		if totalEndpoints > 0 {
			unusedPct = schema.RoundTo(float64(totalUnused)/float64(totalEndpoints)*100, 1)
		}

		writeJSON(w, http.StatusOK, dashboardSummary{
			Services:         len(services),
			TotalEndpoints:   totalEndpoints,
			UnusedEndpoints:  totalUnused,
			UnusedPercentage: unusedPct,
			MonthlySavings:   schema.RoundTo(float64(totalUnused)*core.InfrastructureCostPerEndpoint, 2),
			TotalScans:       totalScans,
		})
	}
}
