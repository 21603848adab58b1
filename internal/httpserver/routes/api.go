package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/askgrace/internal/httpserver/deps"
	"github.com/MrSnakeDoc/askgrace/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/askgrace/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimitBurst,
			RefillPerIPPerMin: d.RateLimitPerMin,
			MaxEntries:        10000,
			TrustProxy:        d.TrustProxy,
		})).Post("/answer", handlers.Answer(d))

		api.Get("/verse", handlers.Verse(d))
	})
}
