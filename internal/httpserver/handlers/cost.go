package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
)

// GetCostAnalysis projects the savings from removing a service's unused
// endpoints, based on its latest scan.
func GetCostAnalysis(d deps.Deps) http.HandlerFunc {
	calculator := core.NewCostCalculator(0) // default pricing

	return func(w http.ResponseWriter, r *http.Request) {
		service := chi.URLParam(r, "service")

		detail, err := d.Scans.GetLatestScan(service)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if detail == nil {
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}

		savings := calculator.SavingsFromSnapshots(detail.Endpoints)
		writeJSON(w, http.StatusOK, savings)
	}
}
