package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Health check (no session required)
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)

			// Dataset uploads
			r.Post("/policies", h.UploadPolicies)
			r.Post("/shipments", h.UploadShipments)

			// Derived views
			r.Get("/metrics", h.GetMetrics)
			r.Get("/intelligence", h.GetIntelligence)
			r.Get("/options", h.GetFilterOptions)
			r.Get("/report", h.GetReport)

			// Country resolution workflow
			r.Get("/unmatched", h.GetUnmatched)
			r.Post("/mappings", h.ApplyMappings)
		})

		r.Get("/enrichment/{iso3}", h.GetEnrichment)
	})

	return r
}
