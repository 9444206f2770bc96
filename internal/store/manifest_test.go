// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"kbpress/internal/models"
)

func TestManifestGetEmptyStore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	articles, err := e.manifest.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("articles: got %d, want 0", len(articles))
	}

	// The rebuild persisted an empty manifest.
	if _, ok, _ := e.store.Get(ctx, "manifest.json"); !ok {
		t.Error("expected manifest.json to be persisted after rebuild")
	}
}

func TestManifestUpdateEntryInsertAndReplace(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a := meta("alpha", "Alpha", 2, models.StatusPublished, nil)
	b := meta("beta", "Beta", 1, models.StatusDraft, nil)

	if err := e.manifest.UpdateEntry(ctx, "alpha", a); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if err := e.manifest.UpdateEntry(ctx, "beta", b); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}

	articles, err := e.manifest.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("articles: got %d, want 2", len(articles))
	}
	// Sorted by order ascending: beta (1) before alpha (2).
	if articles[0].Slug != "beta" || articles[1].Slug != "alpha" {
		t.Errorf("order: got %s,%s", articles[0].Slug, articles[1].Slug)
	}

	// Replace-by-slug, not append.
	a.Title = "Alpha v2"
	if err := e.manifest.UpdateEntry(ctx, "alpha", a); err != nil {
		t.Fatalf("UpdateEntry replace: %v", err)
	}
	articles, _ = e.manifest.Get(ctx)
	if len(articles) != 2 {
		t.Fatalf("articles after replace: got %d, want 2", len(articles))
	}
	if articles[1].Title != "Alpha v2" {
		t.Errorf("title: got %q, want %q", articles[1].Title, "Alpha v2")
	}
}

func TestManifestRemoveEntry(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.manifest.UpdateEntry(ctx, "alpha", meta("alpha", "Alpha", 0, models.StatusPublished, nil))
	e.manifest.UpdateEntry(ctx, "beta", meta("beta", "Beta", 1, models.StatusPublished, nil))

	if err := e.manifest.RemoveEntry(ctx, "alpha"); err != nil {
		t.Fatalf("RemoveEntry: %v", err)
	}

	articles, _ := e.manifest.Get(ctx)
	if len(articles) != 1 || articles[0].Slug != "beta" {
		t.Errorf("articles after remove: %+v", articles)
	}

	// Removing an absent slug is not an error.
	if err := e.manifest.RemoveEntry(ctx, "ghost"); err != nil {
		t.Errorf("RemoveEntry absent: %v", err)
	}
}

func TestManifestRebuildFromMetadataObjects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Write metadata objects directly, bypassing the manifest.
	for _, m := range []models.ArticleMeta{
		meta("c", "C", 3, models.StatusPublished, nil),
		meta("a", "A", 1, models.StatusPublished, nil),
		meta("b", "B", 2, models.StatusDraft, nil),
	} {
		if err := saveDocument(ctx, e.store, metaKey(m.Slug), m); err != nil {
			t.Fatalf("seed %s: %v", m.Slug, err)
		}
	}
	// A stray body object and a corrupt metadata object must not break it.
	e.store.Put(ctx, "docs/a.md", "# A", "text/markdown")
	e.store.Put(ctx, "docs/broken.json", "{not json", "application/json")

	articles, err := e.manifest.Rebuild(ctx)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("articles: got %d, want 3", len(articles))
	}
	for i, want := range []string{"a", "b", "c"} {
		if articles[i].Slug != want {
			t.Errorf("articles[%d]: got %s, want %s", i, articles[i].Slug, want)
		}
	}
}

func TestManifestRebuildIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, m := range []models.ArticleMeta{
		meta("x", "X", 0, models.StatusPublished, nil),
		meta("y", "Y", 1, models.StatusDraft, nil),
	} {
		saveDocument(ctx, e.store, metaKey(m.Slug), m)
	}

	if _, err := e.manifest.Rebuild(ctx); err != nil {
		t.Fatalf("first Rebuild: %v", err)
	}
	first, _, _ := e.store.Get(ctx, "manifest.json")

	if _, err := e.manifest.Rebuild(ctx); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}
	second, _, _ := e.store.Get(ctx, "manifest.json")

	if first != second {
		t.Errorf("rebuild not idempotent:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestManifestSelfHealsOnCorruption(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	saveDocument(ctx, e.store, metaKey("only"), meta("only", "Only", 0, models.StatusPublished, nil))
	e.store.Put(ctx, "manifest.json", "%%% definitely not json", "application/json")

	articles, err := e.manifest.Get(ctx)
	if err != nil {
		t.Fatalf("Get over corrupt manifest: %v", err)
	}
	if len(articles) != 1 || articles[0].Slug != "only" {
		t.Errorf("healed manifest: %+v", articles)
	}

	// The persisted manifest was repaired.
	raw, _, _ := e.store.Get(ctx, "manifest.json")
	if raw == "%%% definitely not json" {
		t.Error("corrupt manifest was not rewritten")
	}
}

func TestManifestStableTieBreak(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Same order value: insertion order must be preserved.
	e.manifest.UpdateEntry(ctx, "first", meta("first", "First", 5, models.StatusPublished, nil))
	e.manifest.UpdateEntry(ctx, "second", meta("second", "Second", 5, models.StatusPublished, nil))

	articles, _ := e.manifest.Get(ctx)
	if articles[0].Slug != "first" || articles[1].Slug != "second" {
		t.Errorf("tie-break order: got %s,%s", articles[0].Slug, articles[1].Slug)
	}
}
