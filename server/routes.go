package server

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers every dashboard route on router.
func SetupRoutes(router chi.Router, h *Handlers) {
	router.Get("/", h.HomePage)
	router.Get("/stats", h.StatsPage)
	router.Get("/data", h.DataPage)
	router.Get("/graphs", h.GraphsPage)

	router.Route("/api", func(r chi.Router) {
		r.Get("/charts", h.ChartsJSON)
		r.Get("/report", h.ReportJSON)
	})

	router.Get("/healthz", h.Healthz)
}
