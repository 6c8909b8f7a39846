package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
	"github.com/huangsam/graveyard/schema"
)

type serviceSummary struct {
	Name             string  `json:"name"`
	TotalEndpoints   int     `json:"total_endpoints"`
	UnusedEndpoints  int     `json:"unused_endpoints"`
	UnusedPercentage float64 `json:"unused_percentage"`
	LastScan         string  `json:"last_scan"`
	ScanID           int64   `json:"scan_id"`
}

type serviceEndpoint struct {
	Method          string                `json:"method"`
	Path            string                `json:"path"`
	CallCount       int                   `json:"call_count"`
	ConfidenceScore int                   `json:"confidence_score"`
	Status          schema.EndpointStatus `json:"status"`
}

type serviceDetail struct {
	Name            string            `json:"name"`
	ScanID          int64             `json:"scan_id"`
	Timestamp       string            `json:"timestamp"`
	TotalEndpoints  int               `json:"total_endpoints"`
	UnusedEndpoints int               `json:"unused_endpoints"`
	Endpoints       []serviceEndpoint `json:"endpoints"`
}

// ListServices returns every known service with its latest scan stats.
func ListServices(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := d.Scans.GetServices()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result := make([]serviceSummary, 0, len(services))
		for _, service := range services {
			scans, err := d.Scans.GetScans(service, 1)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if len(scans) == 0 {
				continue
			}
			scan := scans[0]

			pct := 0.0
			if scan.TotalEndpoints > 0 {
				pct = schema.RoundTo(float64(scan.UnusedEndpoints)/float64(scan.TotalEndpoints)*100, 1)
			}
			result = append(result, serviceSummary{
				Name:             service,
				TotalEndpoints:   scan.TotalEndpoints,
				UnusedEndpoints:  scan.UnusedEndpoints,
				UnusedPercentage: pct,
				LastScan:         scan.Timestamp.Format(time.RFC3339),
				ScanID:           scan.ID,
			})
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// GetService returns a service's latest scan with per-endpoint usage.
func GetService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		detail, err := d.Scans.GetLatestScan(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if detail == nil {
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}

		endpoints := make([]serviceEndpoint, 0, len(detail.Endpoints))
		for i := range detail.Endpoints {
			e := &detail.Endpoints[i]
			endpoints = append(endpoints, serviceEndpoint{
				Method:          e.Method,
				Path:            e.Path,
				CallCount:       e.CallCount,
				ConfidenceScore: e.ConfidenceScore,
				Status:          e.Status(),
			})
		}

		writeJSON(w, http.StatusOK, serviceDetail{
			Name:            name,
			ScanID:          detail.ID,
			Timestamp:       detail.Timestamp.Format(time.RFC3339),
			TotalEndpoints:  detail.TotalEndpoints,
			UnusedEndpoints: detail.UnusedEndpoints,
			Endpoints:       endpoints,
		})
	}
}
