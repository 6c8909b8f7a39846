package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
)

// defaultTrendDays is the lookback window when none is given.
const defaultTrendDays = 30

// GetTrends returns a service's unused-endpoint time series over a window.
func GetTrends(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service := chi.URLParam(r, "service")

		days := defaultTrendDays
		if raw := r.URL.Query().Get("days"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				days = parsed
			}
		}

		since := time.Now().UTC().AddDate(0, 0, -days)
		scans, err := d.Scans.GetScansSince(service, since)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		trend, err := core.BuildTrend(scans, service, days)
		if errors.Is(err, core.ErrNoScansInPeriod) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, trend)
	}
}
