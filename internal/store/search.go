// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sync"

	"kbpress/internal/cache"
	"kbpress/internal/markdown"
	"kbpress/internal/models"
	"kbpress/internal/storage"
)

// searchExcerptLimit caps the stripped body text stored per index entry.
const searchExcerptLimit = 500

// SearchStore maintains search-index.json, the flattened full-text index
// over published articles. Each entry denormalizes title, stripped body,
// level-2/3 headings, and a human-readable category breadcrumb so the
// client-side fuzzy matcher needs no further lookups. The index is a
// rebuildable cache: absence and corruption both trigger a wholesale
// rebuild. Matching and ranking are the search client's concern.
type SearchStore struct {
	store      storage.Store
	cache      *cache.Cache
	articles   *ArticleStore
	categories *CategoryStore

	mu sync.Mutex
}

// NewSearchStore returns a new SearchStore.
func NewSearchStore(st storage.Store, c *cache.Cache, articles *ArticleStore, categories *CategoryStore) *SearchStore {
	return &SearchStore{store: st, cache: c, articles: articles, categories: categories}
}

// Get returns the search index: cache, then the persisted document, then
// a full rebuild.
func (s *SearchStore) Get(ctx context.Context) ([]models.SearchEntry, error) {
	if entries, ok := cache.GetAs[[]models.SearchEntry](s.cache, cacheKeySearchIndex); ok {
		return entries, nil
	}

	var index models.SearchIndex
	found, err := loadDocument(ctx, s.store, document{key: keySearchIndex, recoverable: true}, &index)
	if err != nil {
		return nil, err
	}
	if found {
		s.cache.Set(cacheKeySearchIndex, index.Entries)
		return index.Entries, nil
	}

	return s.Rebuild(ctx)
}

// Rebuild derives the index from every published article's body and the
// category tree, persists it, and refreshes the cache. Articles whose body
// object is missing are skipped.
func (s *SearchStore) Rebuild(ctx context.Context) ([]models.SearchEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	published, err := s.articles.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	categoriesData, err := s.categories.Get(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Category, len(categoriesData.Categories))
	for _, c := range categoriesData.Categories {
		byID[c.ID] = c
	}

	entries := []models.SearchEntry{}
	for _, article := range published {
		content, ok, err := s.articles.GetContent(ctx, article.Slug)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		title := markdown.ExtractTitle(content)
		if title == "" {
			title = article.Title
		}

		var headingTexts []string
		for _, h := range markdown.ExtractHeadings(content) {
			headingTexts = append(headingTexts, h.Text)
		}

		entries = append(entries, models.SearchEntry{
			Title:      title,
			Slug:       article.Slug,
			Content:    markdown.Excerpt(content, searchExcerptLimit),
			Headings:   headingTexts,
			Breadcrumb: breadcrumb(article, byID),
		})
	}

	if err := saveDocument(ctx, s.store, keySearchIndex, models.SearchIndex{Entries: entries}); err != nil {
		return nil, err
	}
	s.cache.Set(cacheKeySearchIndex, entries)
	return entries, nil
}

// breadcrumb renders the category path for an article:
// "Parent > Category > Title", "Category > Title", or just the title when
// the article is uncategorized or its category is unknown.
func breadcrumb(article models.ArticleMeta, byID map[string]models.Category) string {
	if article.Category == nil {
		return article.Title
	}
	cat, ok := byID[*article.Category]
	if !ok {
		return article.Title
	}
	if cat.ParentID != nil {
		if parent, ok := byID[*cat.ParentID]; ok {
			return parent.Title + " > " + cat.Title + " > " + article.Title
		}
	}
	return cat.Title + " > " + article.Title
}
