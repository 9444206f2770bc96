// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"
	"time"

	"kbpress/internal/cache"
	"kbpress/internal/models"
	"kbpress/internal/storage"
)

// env bundles the stores over a fresh in-memory backend for one test.
type env struct {
	store      *storage.Memory
	cache      *cache.Cache
	manifest   *ManifestStore
	articles   *ArticleStore
	categories *CategoryStore
	search     *SearchStore
	config     *SiteConfigStore
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := storage.NewMemory()
	c := cache.New(time.Minute)
	manifest := NewManifestStore(st)
	manifest.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	articles := NewArticleStore(st, c, manifest)
	categories := NewCategoryStore(st, c)

	return &env{
		store:      st,
		cache:      c,
		manifest:   manifest,
		articles:   articles,
		categories: categories,
		search:     NewSearchStore(st, c, articles, categories),
		config:     NewSiteConfigStore(st, c),
	}
}

// meta builds an ArticleMeta for tests.
func meta(slug, title string, order int, status models.ArticleStatus, categoryID *string) models.ArticleMeta {
	now := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	return models.ArticleMeta{
		Title:     title,
		Slug:      slug,
		Category:  categoryID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
		Order:     order,
	}
}

// saveArticle persists both halves of an article.
func (e *env) saveArticle(t *testing.T, m models.ArticleMeta, body string) {
	t.Helper()
	ctx := context.Background()
	if err := e.articles.SaveMeta(ctx, m.Slug, m); err != nil {
		t.Fatalf("SaveMeta(%s): %v", m.Slug, err)
	}
	if err := e.articles.SaveContent(ctx, m.Slug, body); err != nil {
		t.Fatalf("SaveContent(%s): %v", m.Slug, err)
	}
}

func strPtr(s string) *string { return &s }
