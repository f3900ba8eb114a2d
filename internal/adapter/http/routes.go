package http

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.HandleChat)
		r.Post("/mcp/{tool}", h.HandleTool)

		r.Get("/flights", h.ListFlights)
		r.Get("/flights/{code}", h.GetFlight)
		r.Get("/airports", h.ListAirports)
		r.Get("/weather", h.ListWeather)

		r.Get("/health", h.HandleHealth)
	})
}
