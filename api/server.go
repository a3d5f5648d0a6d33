/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. Recoverer:     Panic recovery (500 instead of crash)
  3. RequestLogger: Structured zerolog request logging
  4. CORS:          Cross-origin requests for the browser front end
  5. Authenticator: Session resolution (all routes except auth/scenarios)

ROUTE GROUPS:
  /api/auth/*       Login, register, current user
  /api/requests/*   Submission, pre-validation, listings, decisions
  /api/analytics/*  Ratios, rollups, summary, export
  /api/scenarios/*  Demo data loading (development)

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(h.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Auth routes (no session required)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Group(func(r chi.Router) {
				r.Use(Authenticator(h.Sessions, h.Directory))
				r.Get("/me", h.Me)
			})
		})

		// Request routes
		r.Route("/requests", func(r chi.Router) {
			r.Use(Authenticator(h.Sessions, h.Directory))

			r.Post("/", h.SubmitRequest)
			r.Post("/validate", h.ValidateDraft)
			r.Get("/", h.ListMyRequests)

			// Approver-only views and decisions
			r.Group(func(r chi.Router) {
				r.Use(RequireApprover)
				r.Get("/all", h.ListAllRequests)
				r.Get("/pending", h.ListPendingRequests)
				r.Post("/{id}/approve", h.ApproveRequest)
				r.Post("/{id}/reject", h.RejectRequest)
			})
		})

		// Analytics routes
		r.Route("/analytics", func(r chi.Router) {
			r.Use(Authenticator(h.Sessions, h.Directory))
			r.Get("/absence-ratio", h.GetAbsenceRatio)
			r.Get("/departments", h.GetDepartmentRollup)
			r.Get("/summary", h.GetYearSummary)
			r.Get("/export", h.ExportAnalytics)
		})

		// Scenario routes (development/demo)
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
