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

// CategoriesList returns the category tree, each node decorated with its
// published article count.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	data, err := a.categories.Get(r.Context())
	if err != nil {
		slog.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	articles, err := a.articles.ListAll(r.Context())
	if err != nil {
		slog.Error("list articles for category counts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	counts := make(map[string]int)
	for _, m := range articles {
		if m.Category != nil && m.IsPublished() {
			counts[*m.Category]++
		}
	}

	enriched := make([]models.CategoryWithCount, 0, len(data.Categories))
	for _, c := range data.Categories {
		enriched = append(enriched, models.CategoryWithCount{
			Category:     c,
			ArticleCount: counts[c.ID],
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": enriched})
}

// CategoriesReplace replaces the whole category document. Removals are
// expressed by omission — there is no per-category delete.
func (a *API) CategoriesReplace(w http.ResponseWriter, r *http.Request) {
	var data models.CategoriesData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.categories.Save(r.Context(), data); err != nil {
		slog.Error("save categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save categories")
		return
	}
	writeSuccess(w)
}
