// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"kbpress/internal/models"
)

// ConfigGet returns the site configuration, defaults merged in.
func (a *API) ConfigGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := a.config.Get(r.Context())
	if err != nil {
		slog.Error("load site config", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load configuration")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// ConfigUpdate replaces the site configuration and purges the cache —
// configuration leaks into every rendered surface, so everything cached
// is suspect afterward.
func (a *API) ConfigUpdate(w http.ResponseWriter, r *http.Request) {
	var cfg models.SiteConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.config.Save(r.Context(), cfg); err != nil {
		slog.Error("save site config", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save configuration")
		return
	}

	a.cache.Clear()
	writeSuccess(w)
}
