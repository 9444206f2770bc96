// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"kbpress/internal/models"
	"kbpress/internal/storage"
)

// ManifestStore maintains manifest.json, the derived ordered list of all
// article metadata that backs every "list articles" query. The manifest is
// a rebuildable cache over the per-article metadata objects, never the
// canonical record: on absence or corruption it is reconstructed by
// listing and parsing every metadata object.
//
// All mutations serialize on a mutex so concurrent read-modify-write
// cycles cannot drop each other's entries.
type ManifestStore struct {
	store storage.Store

	mu sync.Mutex

	// now stamps UpdatedAt on persisted manifests, replaceable in tests.
	now func() time.Time
}

// NewManifestStore returns a new ManifestStore.
func NewManifestStore(st storage.Store) *ManifestStore {
	return &ManifestStore{store: st, now: time.Now}
}

// Get returns the manifest's articles. A missing or unparseable manifest
// triggers a full rebuild (self-healing).
func (m *ManifestStore) Get(ctx context.Context) ([]models.ArticleMeta, error) {
	articles, found, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return articles, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuildLocked(ctx)
}

// Rebuild reconstructs the manifest from every stored metadata object and
// persists it. This is the canonical recovery path after index corruption.
func (m *ManifestStore) Rebuild(ctx context.Context) ([]models.ArticleMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuildLocked(ctx)
}

// UpdateEntry inserts or replaces the manifest entry for slug and persists
// the re-sorted manifest.
func (m *ManifestStore) UpdateEntry(ctx context.Context, slug string, meta models.ArticleMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	articles, err := m.getLocked(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range articles {
		if articles[i].Slug == slug {
			articles[i] = meta
			replaced = true
			break
		}
	}
	if !replaced {
		articles = append(articles, meta)
	}

	sortByOrder(articles)
	return m.persistLocked(ctx, articles)
}

// RemoveEntry filters the slug out of the manifest and persists it.
// Removing an absent slug is a no-op write.
func (m *ManifestStore) RemoveEntry(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	articles, err := m.getLocked(ctx)
	if err != nil {
		return err
	}

	filtered := articles[:0]
	for _, a := range articles {
		if a.Slug != slug {
			filtered = append(filtered, a)
		}
	}

	return m.persistLocked(ctx, filtered)
}

// load fetches the persisted manifest without taking the mutex.
// found is false when the document is absent or unparseable.
func (m *ManifestStore) load(ctx context.Context) ([]models.ArticleMeta, bool, error) {
	var manifest models.Manifest
	found, err := loadDocument(ctx, m.store, document{key: keyManifest, recoverable: true}, &manifest)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return manifest.Articles, true, nil
}

// getLocked returns the current articles, rebuilding if needed.
// Callers must hold mu.
func (m *ManifestStore) getLocked(ctx context.Context) ([]models.ArticleMeta, error) {
	articles, found, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return articles, nil
	}
	return m.rebuildLocked(ctx)
}

// rebuildLocked lists every metadata object, parses what it can, and
// persists the result. Unparseable objects are skipped (availability over
// strict completeness); only store failures abort. Callers must hold mu.
func (m *ManifestStore) rebuildLocked(ctx context.Context) ([]models.ArticleMeta, error) {
	keys, err := m.store.List(ctx, docsPrefix)
	if err != nil {
		return nil, err
	}

	articles := []models.ArticleMeta{}
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}

		var meta models.ArticleMeta
		found, err := loadDocument(ctx, m.store, document{key: key, recoverable: true}, &meta)
		if err != nil {
			return nil, err
		}
		if !found {
			slog.Warn("manifest rebuild skipping unreadable metadata", "key", key)
			continue
		}
		articles = append(articles, meta)
	}

	sortByOrder(articles)

	if err := m.persistLocked(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// persistLocked writes the manifest document. Callers must hold mu.
func (m *ManifestStore) persistLocked(ctx context.Context, articles []models.ArticleMeta) error {
	manifest := models.Manifest{Articles: articles, UpdatedAt: m.now().UTC()}
	return saveDocument(ctx, m.store, keyManifest, manifest)
}

// sortByOrder sorts articles by Order ascending. The sort is stable:
// equal orders keep their current relative position.
func sortByOrder(articles []models.ArticleMeta) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Order < articles[j].Order
	})
}
