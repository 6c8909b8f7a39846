package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
	"github.com/huangsam/graveyard/internal/httpserver/handlers"
)

func init() { Register(registerDashboard) }

func registerDashboard(r chi.Router, d deps.Deps) {
	r.Get("/api/dashboard/summary", handlers.DashboardSummary(d))
}
