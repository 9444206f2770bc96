// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains. Read
// routes are public; every mutating route requires the admin token.
package router

import (
	"github.com/go-chi/chi/v5"

	"kbpress/internal/auth"
	"kbpress/internal/handlers"
	"kbpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints.
		r.Post("/auth/login", api.Login)
		r.Post("/auth/logout", api.Logout)

		// Public reads.
		r.Get("/articles", api.ArticlesList)
		r.Get("/articles/{slug}", api.ArticleGet)
		r.Get("/categories", api.CategoriesList)
		r.Get("/config", api.ConfigGet)
		r.Get("/search-index", api.SearchIndex)

		// Admin mutations — token required.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(gate))

			r.Put("/articles/{slug}", api.ArticleUpdate)
			r.Delete("/articles/{slug}", api.ArticleDelete)
			r.Put("/categories", api.CategoriesReplace)
			r.Put("/config", api.ConfigUpdate)
			r.Post("/import", api.Import)
			r.Post("/cache/purge", api.CachePurge)
			r.Post("/preview", api.Preview)
		})
	})

	return r
}
