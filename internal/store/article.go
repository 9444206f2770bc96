// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"kbpress/internal/cache"
	"kbpress/internal/models"
	"kbpress/internal/storage"
)

// ArticleStore manages the per-article object pairs: docs/{slug}.json
// (metadata) and docs/{slug}.md (body). The two are written and deleted
// together but not transactionally — a crash between the writes leaves an
// inconsistent pair, which readers tolerate by treating either half as
// independently optional.
type ArticleStore struct {
	store    storage.Store
	cache    *cache.Cache
	manifest *ManifestStore
}

// NewArticleStore returns a new ArticleStore patching the given manifest.
func NewArticleStore(st storage.Store, c *cache.Cache, manifest *ManifestStore) *ArticleStore {
	return &ArticleStore{store: st, cache: c, manifest: manifest}
}

// GetMeta returns the metadata for slug, cache-first. Returns nil if the
// metadata object does not exist; a body may still exist without it.
func (s *ArticleStore) GetMeta(ctx context.Context, slug string) (*models.ArticleMeta, error) {
	key := metaCacheKey(slug)
	if meta, ok := cache.GetAs[models.ArticleMeta](s.cache, key); ok {
		return &meta, nil
	}

	var meta models.ArticleMeta
	found, err := loadDocument(ctx, s.store, document{key: metaKey(slug)}, &meta)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	s.cache.Set(key, meta)
	return &meta, nil
}

// SaveMeta writes the metadata object, patches the manifest, and
// invalidates the affected caches. The manifest patch happens after the
// durable write so a reader that re-fetches metadata directly after cache
// invalidation observes the new object.
func (s *ArticleStore) SaveMeta(ctx context.Context, slug string, meta models.ArticleMeta) error {
	if err := saveDocument(ctx, s.store, metaKey(slug), meta); err != nil {
		return err
	}
	if err := s.manifest.UpdateEntry(ctx, slug, meta); err != nil {
		return fmt.Errorf("patch manifest for %s: %w", slug, err)
	}

	s.cache.Invalidate(metaCacheKey(slug))
	s.cache.InvalidatePrefix(cachePrefixArticlesList)
	return nil
}

// GetContent returns the Markdown body for slug, cache-first. ok is false
// when the body object does not exist — callers must treat that as
// not-found even when metadata exists.
func (s *ArticleStore) GetContent(ctx context.Context, slug string) (string, bool, error) {
	key := contentCacheKey(slug)
	if content, ok := cache.GetString(s.cache, key); ok {
		return content, true, nil
	}

	content, ok, err := s.store.Get(ctx, contentKey(slug))
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	s.cache.Set(key, content)
	return content, true, nil
}

// SaveContent writes the Markdown body and invalidates the content cache
// plus the whole search-index namespace — body text feeds the index, so a
// content change always forces index staleness.
func (s *ArticleStore) SaveContent(ctx context.Context, slug, content string) error {
	if err := s.store.Put(ctx, contentKey(slug), content, "text/markdown"); err != nil {
		return fmt.Errorf("save content %s: %w", slug, err)
	}

	s.cache.Invalidate(contentCacheKey(slug))
	s.invalidateSearchIndex(ctx)
	return nil
}

// Delete removes both article objects, the manifest entry, and every
// affected cache key. Store delete errors propagate and abort — there is
// no partial-delete retry.
func (s *ArticleStore) Delete(ctx context.Context, slug string) error {
	if err := s.store.Delete(ctx, contentKey(slug)); err != nil {
		return fmt.Errorf("delete content %s: %w", slug, err)
	}
	if err := s.store.Delete(ctx, metaKey(slug)); err != nil {
		return fmt.Errorf("delete meta %s: %w", slug, err)
	}
	if err := s.manifest.RemoveEntry(ctx, slug); err != nil {
		return fmt.Errorf("unpatch manifest for %s: %w", slug, err)
	}

	s.cache.Invalidate(metaCacheKey(slug))
	s.cache.Invalidate(contentCacheKey(slug))
	s.cache.InvalidatePrefix(cachePrefixArticlesList)
	s.invalidateSearchIndex(ctx)
	return nil
}

// ListAll returns every article's metadata from the manifest, cache-first.
func (s *ArticleStore) ListAll(ctx context.Context) ([]models.ArticleMeta, error) {
	if articles, ok := cache.GetAs[[]models.ArticleMeta](s.cache, cacheKeyArticlesList); ok {
		return articles, nil
	}

	articles, err := s.manifest.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKeyArticlesList, articles)
	return articles, nil
}

// ListByCategory filters the manifest by category id and, when status is
// non-empty, by status.
func (s *ArticleStore) ListByCategory(ctx context.Context, categoryID string, status models.ArticleStatus) ([]models.ArticleMeta, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []models.ArticleMeta
	for _, a := range all {
		if a.Category == nil || *a.Category != categoryID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered, nil
}

// ListPublished returns all published articles.
func (s *ArticleStore) ListPublished(ctx context.Context) ([]models.ArticleMeta, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var published []models.ArticleMeta
	for _, a := range all {
		if a.IsPublished() {
			published = append(published, a)
		}
	}
	return published, nil
}

// invalidateSearchIndex clears the search-index cache namespace and
// best-effort deletes the persisted index so the next read rebuilds
// instead of serving a stale document.
func (s *ArticleStore) invalidateSearchIndex(ctx context.Context) {
	s.cache.InvalidatePrefix(cachePrefixSearchIndex)
	if err := s.store.Delete(ctx, keySearchIndex); err != nil {
		slog.Warn("failed to drop persisted search index", "error", err)
	}
}

// Navigation sorts the given subset by Order ascending and returns the
// immediate neighbors of currentSlug. Either side is nil at a boundary or
// when the slug is not in the subset. Equal orders keep the caller's
// relative order (stable sort).
func Navigation(articles []models.ArticleMeta, currentSlug string) models.ArticleNavigation {
	sorted := make([]models.ArticleMeta, len(articles))
	copy(sorted, articles)
	sortByOrder(sorted)

	index := -1
	for i, a := range sorted {
		if a.Slug == currentSlug {
			index = i
			break
		}
	}

	var nav models.ArticleNavigation
	if index > 0 {
		nav.Prev = &sorted[index-1]
	}
	if index >= 0 && index < len(sorted)-1 {
		nav.Next = &sorted[index+1]
	}
	return nav
}
