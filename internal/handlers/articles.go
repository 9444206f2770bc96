// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kbpress/internal/models"
	"kbpress/internal/store"
)

// ArticlesList returns article metadata from the manifest, optionally
// filtered by category id and status.
func (a *API) ArticlesList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	status := models.ArticleStatus(r.URL.Query().Get("status"))

	var (
		articles []models.ArticleMeta
		err      error
	)
	if category != "" {
		articles, err = a.articles.ListByCategory(r.Context(), category, status)
	} else {
		articles, err = a.articles.ListAll(r.Context())
		if err == nil && status != "" {
			filtered := articles[:0:0]
			for _, m := range articles {
				if m.Status == status {
					filtered = append(filtered, m)
				}
			}
			articles = filtered
		}
	}
	if err != nil {
		slog.Error("list articles", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}

	if articles == nil {
		articles = []models.ArticleMeta{}
	}
	writeJSON(w, http.StatusOK, articles)
}

// ArticleGet returns an article's body and metadata. 404 only when both
// halves are absent; a partial pair is served with the missing half empty.
func (a *API) ArticleGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	meta, err := a.articles.GetMeta(r.Context(), slug)
	if err != nil {
		a.articleError(w, slug, "read metadata", err)
		return
	}
	content, ok, err := a.articles.GetContent(r.Context(), slug)
	if err != nil {
		a.articleError(w, slug, "read content", err)
		return
	}

	if meta == nil && !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"content": content,
		"meta":    meta,
	})
}

// articleUpdate is the partial-update request body: either half may be
// supplied independently.
type articleUpdate struct {
	Content *string             `json:"content"`
	Meta    *models.ArticleMeta `json:"meta"`
}

// ArticleUpdate writes the supplied halves of an article. Content and
// metadata are independent: sending only one leaves the other untouched.
func (a *API) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var body articleUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Meta != nil && !body.Meta.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid article status")
		return
	}

	if body.Content != nil {
		if err := a.articles.SaveContent(r.Context(), slug, *body.Content); err != nil {
			a.articleError(w, slug, "save content", err)
			return
		}
	}
	if body.Meta != nil {
		if err := a.articles.SaveMeta(r.Context(), slug, *body.Meta); err != nil {
			a.articleError(w, slug, "save metadata", err)
			return
		}
	}

	writeSuccess(w)
}

// ArticleDelete removes both article objects. Deleting an absent slug
// succeeds — the desired end state already holds.
func (a *API) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := a.articles.Delete(r.Context(), slug); err != nil {
		a.articleError(w, slug, "delete", err)
		return
	}
	writeSuccess(w)
}

func (a *API) articleError(w http.ResponseWriter, slug, op string, err error) {
	slog.Error("article "+op, "slug", slug, "error", err)
	if errors.Is(err, store.ErrCorruptDocument) {
		writeError(w, http.StatusInternalServerError, "Stored article is corrupt")
		return
	}
	writeError(w, http.StatusInternalServerError, "Article operation failed")
}
