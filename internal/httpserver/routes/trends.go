package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
	"github.com/huangsam/graveyard/internal/httpserver/handlers"
)

func init() { Register(registerTrends) }

func registerTrends(r chi.Router, d deps.Deps) {
	r.Get("/api/trends/{service}", handlers.GetTrends(d))
}
