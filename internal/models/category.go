// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// Category is one node of the two-level category tree. The whole tree is
// stored as a single JSON document (categories.json) and always replaced
// wholesale; there is no per-category update protocol.
type Category struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Slug        string  `json:"slug"`
	Icon        string  `json:"icon"` // raw SVG markup, sanitized at render time
	IconBgColor string  `json:"iconBgColor"`
	Order       int     `json:"order"`
	ParentID    *string `json:"parentId"`
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// NewCategoryID returns a fresh opaque category identifier.
func NewCategoryID() string {
	return uuid.NewString()
}

// CategoriesData is the categories.json document.
type CategoriesData struct {
	Categories []Category `json:"categories"`
}

// CategoryWithCount decorates a category with its published article count,
// aggregated across the category and its children for the public listing.
type CategoryWithCount struct {
	Category
	ArticleCount int `json:"articleCount"`
}
