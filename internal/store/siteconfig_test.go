// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"
)

func TestSiteConfigFirstUseDefault(t *testing.T) {
	e := newEnv(t)

	cfg, err := e.config.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Name != "kbpress" {
		t.Errorf("name: got %q", cfg.Name)
	}
	if cfg.Colors.Primary != "#2563eb" {
		t.Errorf("primary color: got %q", cfg.Colors.Primary)
	}
	if cfg.Hero == nil || cfg.Hero.Background != "color" {
		t.Errorf("hero: %+v", cfg.Hero)
	}
}

func TestSiteConfigPartialDocumentMergesOverDefaults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// A stored document that only sets the name and one color.
	e.store.Put(ctx, "config.json",
		`{"name":"Acme Docs","colors":{"primary":"#ff0000"}}`, "application/json")

	cfg, err := e.config.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Name != "Acme Docs" {
		t.Errorf("name: got %q", cfg.Name)
	}
	if cfg.Colors.Primary != "#ff0000" {
		t.Errorf("primary: got %q", cfg.Colors.Primary)
	}
	// Unset fields keep their defaults.
	if cfg.Colors.PrimaryDark != "#60a5fa" {
		t.Errorf("primaryDark default lost: got %q", cfg.Colors.PrimaryDark)
	}
	if cfg.Metadata.Description != "Knowledge base" {
		t.Errorf("metadata default lost: got %q", cfg.Metadata.Description)
	}
}

func TestSiteConfigSaveRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cfg := DefaultSiteConfig()
	cfg.Name = "Handbook"
	cfg.SocialLinks.GitHub = "https://github.com/example"

	if err := e.config.Save(ctx, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := e.config.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Handbook" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.SocialLinks.GitHub != "https://github.com/example" {
		t.Errorf("github: got %q", got.SocialLinks.GitHub)
	}
}

func TestSiteConfigCorruptionSurfaces(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.store.Put(ctx, "config.json", "{{{", "application/json")

	_, err := e.config.Get(ctx)
	if err == nil {
		t.Fatal("expected error for corrupt config document")
	}
	if !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("error: got %v, want ErrCorruptDocument", err)
	}
}

func TestSiteConfigCacheInvalidatedOnSave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Warm the cache with the defaults.
	e.config.Get(ctx)

	cfg := DefaultSiteConfig()
	cfg.Name = "Renamed"
	if err := e.config.Save(ctx, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _ := e.config.Get(ctx)
	if got.Name != "Renamed" {
		t.Errorf("name after save: got %q, want Renamed", got.Name)
	}
}
