// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"sort"
	"sync"

	"kbpress/internal/cache"
	"kbpress/internal/models"
	"kbpress/internal/storage"
)

// CategoryStore manages the single categories.json document holding the
// ordered two-level category tree. Saves replace the whole document; the
// caller supplies the complete desired list (additions, edits, and removals
// all expressed as a full replacement).
type CategoryStore struct {
	store storage.Store
	cache *cache.Cache

	// mu serializes saves so two concurrent full-document replaces cannot
	// interleave with readers mid-invalidation.
	mu sync.Mutex
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(st storage.Store, c *cache.Cache) *CategoryStore {
	return &CategoryStore{store: st, cache: c}
}

// Get returns the category list, cache-first. A document that has never
// been created yields an empty list (first-use default, not an error).
// A malformed stored document surfaces as ErrCorruptDocument.
func (s *CategoryStore) Get(ctx context.Context) (models.CategoriesData, error) {
	if data, ok := cache.GetAs[models.CategoriesData](s.cache, cacheKeyCategories); ok {
		return data, nil
	}

	var data models.CategoriesData
	found, err := loadDocument(ctx, s.store, document{key: keyCategories}, &data)
	if err != nil {
		return models.CategoriesData{}, err
	}
	if !found {
		data = models.CategoriesData{Categories: []models.Category{}}
	}

	s.cache.Set(cacheKeyCategories, data)
	return data, nil
}

// Save replaces the entire categories document and invalidates the cache.
// Deleting a parent is expressed by saving a list without it and without
// its children.
func (s *CategoryStore) Save(ctx context.Context, data models.CategoriesData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := saveDocument(ctx, s.store, keyCategories, data); err != nil {
		return err
	}
	s.cache.Invalidate(cacheKeyCategories)
	return nil
}

// FindBySlug locates a category by slug within a sibling scope: parentID
// nil searches top-level categories, otherwise the children of parentID.
// Returns nil if absent.
func FindBySlug(categories []models.Category, slug string, parentID *string) *models.Category {
	for i := range categories {
		c := &categories[i]
		if c.Slug != slug {
			continue
		}
		if parentID == nil {
			if c.IsTopLevel() {
				return c
			}
		} else if c.ParentID != nil && *c.ParentID == *parentID {
			return c
		}
	}
	return nil
}

// FindByID locates a category by id. Returns nil if absent.
func FindByID(categories []models.Category, id string) *models.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

// Children returns the direct children of parentID ordered by Order.
// The sort is stable, so order collisions keep document order.
func Children(categories []models.Category, parentID string) []models.Category {
	var children []models.Category
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Order < children[j].Order
	})
	return children
}

// TopLevel returns the parentless categories ordered by Order.
func TopLevel(categories []models.Category) []models.Category {
	var top []models.Category
	for _, c := range categories {
		if c.IsTopLevel() {
			top = append(top, c)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Order < top[j].Order
	})
	return top
}

// DescendantIDs returns the id of the given category followed by the ids
// of all its children. Used to aggregate article counts across a parent
// and its children (the tree is at most two levels deep).
func DescendantIDs(categories []models.Category, id string) []string {
	ids := []string{id}
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == id {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
