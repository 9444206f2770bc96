// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API. Read routes are public;
// mutating routes sit behind the admin token middleware.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"kbpress/internal/auth"
	"kbpress/internal/cache"
	"kbpress/internal/importer"
	"kbpress/internal/store"
)

// API bundles the stores the handlers operate on.
type API struct {
	articles   *store.ArticleStore
	categories *store.CategoryStore
	config     *store.SiteConfigStore
	search     *store.SearchStore
	importer   *importer.Importer
	gate       *auth.Gate
	cache      *cache.Cache
}

// New returns the API handler set.
func New(articles *store.ArticleStore, categories *store.CategoryStore, config *store.SiteConfigStore, search *store.SearchStore, imp *importer.Importer, gate *auth.Gate, c *cache.Cache) *API {
	return &API{
		articles:   articles,
		categories: categories,
		config:     config,
		search:     search,
		importer:   imp,
		gate:       gate,
		cache:      c,
	}
}

// writeJSON serializes v with the appropriate headers. Content reads are
// marked no-store: the server-side cache is the only caching layer.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError sends a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeSuccess sends the standard mutation acknowledgement.
func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Health is the liveness probe.
func (a *API) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
