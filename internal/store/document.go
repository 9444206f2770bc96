// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the content repository: categories, articles,
// the derived manifest and search index, and the site configuration, all
// persisted as JSON/Markdown objects in the object store with a TTL cache
// in front of every read.
//
// Stored documents split into two classes. Recoverable documents (manifest,
// search index) are rebuildable caches: a parse failure is treated as
// absence and triggers a rebuild. Strict documents (categories, site
// config, article metadata) are canonical: a parse failure surfaces as
// ErrCorruptDocument, because silently replacing them would hide content.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kbpress/internal/storage"
)

// Object store keys, relative to the configured base path.
const (
	keyConfig      = "config.json"
	keyCategories  = "categories.json"
	keyManifest    = "manifest.json"
	keySearchIndex = "search-index.json"

	// docsPrefix is the namespace for per-article objects:
	// docs/{slug}.json holds metadata, docs/{slug}.md the body.
	docsPrefix = "docs/"
)

// Cache keys.
const (
	cacheKeyConfig       = "config"
	cacheKeyCategories   = "categories"
	cacheKeyArticlesList = "articles-list:all"
	cacheKeySearchIndex  = "search-index"

	cachePrefixArticlesList = "articles-list"
	cachePrefixSearchIndex  = "search-index"
)

func metaCacheKey(slug string) string    { return "article-meta:" + slug }
func contentCacheKey(slug string) string { return "article-content:" + slug }

func metaKey(slug string) string    { return docsPrefix + slug + ".json" }
func contentKey(slug string) string { return docsPrefix + slug + ".md" }

// ErrCorruptDocument marks a stored document that exists but fails strict
// decoding. Strict documents never self-heal.
var ErrCorruptDocument = errors.New("corrupt stored document")

// document describes how one stored JSON document is handled.
type document struct {
	key         string
	recoverable bool // parse failure treated as absence instead of an error
}

// loadDocument fetches and strictly decodes a stored JSON document into
// out. Returns found=false when the object does not exist — and also when
// it fails to parse but the document is recoverable, since a rebuildable
// cache treats corruption as absence.
func loadDocument[T any](ctx context.Context, st storage.Store, doc document, out *T) (bool, error) {
	raw, ok, err := st.Get(ctx, doc.key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		if doc.recoverable {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, doc.key, err)
	}
	return true, nil
}

// saveDocument marshals v with indentation (the documents are hand-
// inspectable in the bucket) and writes it as application/json.
func saveDocument(ctx context.Context, st storage.Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := st.Put(ctx, key, string(data), "application/json"); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
