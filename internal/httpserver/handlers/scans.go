package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/graveyard/core"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
	"github.com/huangsam/graveyard/schema"
)

// defaultScanListLimit caps /api/scans when no limit is given.
const defaultScanListLimit = 20

type scanSummary struct {
	ID              int64   `json:"id"`
	ServiceName     string  `json:"service_name"`
	Timestamp       string  `json:"timestamp"`
	TotalEndpoints  int     `json:"total_endpoints"`
	UnusedEndpoints int     `json:"unused_endpoints"`
	Success         bool    `json:"success"`
	Duration        float64 `json:"duration"`
}

type scanEndpoint struct {
	Method          string `json:"method"`
	Path            string `json:"path"`
	CallCount       int    `json:"call_count"`
	ConfidenceScore int    `json:"confidence_score"`
}

type scanDetail struct {
	ID              int64          `json:"id"`
	ServiceName     string         `json:"service_name"`
	Timestamp       string         `json:"timestamp"`
	TotalEndpoints  int            `json:"total_endpoints"`
	UnusedEndpoints int            `json:"unused_endpoints"`
	Success         bool           `json:"success"`
	Endpoints       []scanEndpoint `json:"endpoints"`
}

// ListScans returns recent scans, optionally filtered by service.
func ListScans(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultScanListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				limit = parsed
			}
		}
		service := r.URL.Query().Get("service")

		scans, err := d.Scans.GetScans(service, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result := make([]scanSummary, 0, len(scans))
		for _, scan := range scans {
			result = append(result, scanSummary{
				ID:              scan.ID,
				ServiceName:     scan.ServiceName,
				Timestamp:       scan.Timestamp.Format(time.RFC3339),
				TotalEndpoints:  scan.TotalEndpoints,
				UnusedEndpoints: scan.UnusedEndpoints,
				Success:         scan.Success,
				Duration:        scan.ScanDurationSeconds,
			})
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// GetScan returns one scan with its endpoint snapshots.
func GetScan(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid scan ID")
			return
		}

		detail, err := d.Scans.GetScanByID(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if detail == nil {
			writeError(w, http.StatusNotFound, "Scan not found")
			return
		}

		endpoints := make([]scanEndpoint, 0, len(detail.Endpoints))
		for i := range detail.Endpoints {
			e := &detail.Endpoints[i]
			endpoints = append(endpoints, scanEndpoint{
				Method:          e.Method,
				Path:            e.Path,
				CallCount:       e.CallCount,
				ConfidenceScore: e.ConfidenceScore,
			})
		}

		writeJSON(w, http.StatusOK, scanDetail{
			ID:              detail.ID,
			ServiceName:     detail.ServiceName,
			Timestamp:       detail.Timestamp.Format(time.RFC3339),
			TotalEndpoints:  detail.TotalEndpoints,
			UnusedEndpoints: detail.UnusedEndpoints,
			Success:         detail.Success,
			Endpoints:       endpoints,
		})
	}
}

// CompareScans diffs two scans by ID.
func CompareScans(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		first, err := scanByParam(w, r, d, "id1")
		if err != nil {
			return
		}
		second, err := scanByParam(w, r, d, "id2")
		if err != nil {
			return
		}

		comparison := core.CompareScans(first, second)
		writeJSON(w, http.StatusOK, comparison)
	}
}

// scanByParam loads a scan named by a URL parameter, writing the error
// response itself when the scan cannot be served.
func scanByParam(w http.ResponseWriter, r *http.Request, d deps.Deps, param string) (*schema.ScanDetail, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scan ID")
		return nil, err
	}

	detail, err := d.Scans.GetScanByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, err
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Scan %d not found", id))
		return nil, fmt.Errorf("scan %d not found", id)
	}
	return detail, nil
}
