// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"kbpress/internal/models"
)

// SearchIndex returns the flattened search index, building it when no
// fresh copy exists.
func (a *API) SearchIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := a.search.Get(r.Context())
	if err != nil {
		slog.Error("build search index", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build search index")
		return
	}
	if entries == nil {
		entries = []models.SearchEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
