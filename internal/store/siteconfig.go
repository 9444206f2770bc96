// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"kbpress/internal/cache"
	"kbpress/internal/models"
	"kbpress/internal/storage"
)

// SiteConfigStore manages config.json, the site branding/navigation
// document. Stored documents may be partial: readers decode them over the
// defaults so missing sections keep their default values. A document that
// exists but fails to parse surfaces as corruption — the config is
// canonical, not rebuildable.
type SiteConfigStore struct {
	store storage.Store
	cache *cache.Cache
}

// NewSiteConfigStore returns a new SiteConfigStore.
func NewSiteConfigStore(st storage.Store, c *cache.Cache) *SiteConfigStore {
	return &SiteConfigStore{store: st, cache: c}
}

// DefaultSiteConfig returns the first-use configuration.
func DefaultSiteConfig() models.SiteConfig {
	return models.SiteConfig{
		Name: "kbpress",
		Colors: models.SiteColors{
			Primary:     "#2563eb",
			PrimaryDark: "#60a5fa",
		},
		Footer: models.FooterConfig{
			Links: []models.FooterLink{},
		},
		Metadata: models.SiteMetadata{
			Title:       "kbpress",
			Description: "Knowledge base",
		},
		Hero: &models.HeroConfig{
			Title:           "How can we help?",
			Subtitle:        "Search our knowledge base",
			Background:      "color",
			BackgroundColor: "#4F46E5",
			TextColor:       "#FFFFFF",
		},
		Navbar: &models.Navbar{
			Links: []models.NavbarLink{},
			CTA:   []models.NavbarCTA{},
		},
	}
}

// Get returns the site configuration, cache-first, with stored values
// merged over the defaults.
func (s *SiteConfigStore) Get(ctx context.Context) (models.SiteConfig, error) {
	if cfg, ok := cache.GetAs[models.SiteConfig](s.cache, cacheKeyConfig); ok {
		return cfg, nil
	}

	cfg := DefaultSiteConfig()
	// Decoding over the populated defaults leaves absent fields at their
	// default values, section by section.
	if _, err := loadDocument(ctx, s.store, document{key: keyConfig}, &cfg); err != nil {
		return models.SiteConfig{}, err
	}

	s.cache.Set(cacheKeyConfig, cfg)
	return cfg, nil
}

// Save replaces the configuration document and invalidates its cache key.
func (s *SiteConfigStore) Save(ctx context.Context, cfg models.SiteConfig) error {
	if err := saveDocument(ctx, s.store, keyConfig, cfg); err != nil {
		return err
	}
	s.cache.Invalidate(cacheKeyConfig)
	return nil
}
