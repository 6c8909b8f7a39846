package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
	"github.com/huangsam/graveyard/internal/httpserver/handlers"
)

func init() { Register(registerScans) }

func registerScans(r chi.Router, d deps.Deps) {
	r.Get("/api/scans", handlers.ListScans(d))
	r.Get("/api/scans/{id}", handlers.GetScan(d))
	r.Get("/api/scans/{id1}/compare/{id2}", handlers.CompareScans(d))
}
