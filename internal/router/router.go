// Package router sets up all HTTP routes and middleware chains for the
// Artegen API. Routes are grouped into the authenticated-facing /api
// surface and the provider-facing /webhooks surface.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"artegen/internal/handlers"
	"artegen/internal/middleware"
)

// Handlers bundles the handler groups the router mounts.
type Handlers struct {
	Generations *handlers.Generations
	Webhooks    *handlers.Webhooks
	Companies   *handlers.Companies
	Users       *handlers.Users
	Templates   *handlers.Templates
	Artes       *handlers.Artes
	Plans       *handlers.Plans
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned rate limiter must be stopped
// on shutdown.
func New(h Handlers) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Generation submissions fan out to the paid workflow provider, so
	// they get a tighter limit than the rest of the API.
	submitLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Content generation lifecycle.
		r.Route("/generations", func(r chi.Router) {
			r.With(submitLimiter.Middleware).Post("/", h.Generations.Create)
			r.Get("/", h.Generations.List)
			r.Get("/{id}", h.Generations.Get)
			r.Get("/{id}/wait", h.Generations.Await)
		})

		// Tenants.
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", h.Companies.List)
			r.Post("/", h.Companies.Create)
			r.Get("/{id}", h.Companies.Get)
			r.Put("/{id}", h.Companies.Update)
			r.Delete("/{id}", h.Companies.Delete)
		})

		// Company members.
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.Users.List)
			r.Post("/", h.Users.Create)
			r.Get("/{id}", h.Users.Get)
			r.Delete("/{id}", h.Users.Delete)
		})

		// Arte templates.
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.Templates.List)
			r.Post("/", h.Templates.Create)
			r.Get("/{id}", h.Templates.Get)
			r.Put("/{id}", h.Templates.Update)
			r.Delete("/{id}", h.Templates.Delete)
		})

		// Finished artes.
		r.Route("/artes", func(r chi.Router) {
			r.Get("/", h.Artes.List)
			r.Post("/", h.Artes.Create)
			r.Get("/{id}", h.Artes.Get)
			r.Put("/{id}", h.Artes.Update)
			r.Delete("/{id}", h.Artes.Delete)
			r.Post("/{id}/image", h.Artes.UploadImage)
		})

		// Plan catalogue.
		r.Get("/plans", h.Plans.List)
	})

	// Provider callbacks — secret-checked inside the handler.
	r.Post("/webhooks/generations/{id}", h.Webhooks.Receive)

	return r, submitLimiter
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
