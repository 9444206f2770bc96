// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	StatusPublished ArticleStatus = "published"
	StatusDraft     ArticleStatus = "draft"
)

// Valid reports whether the status is one of the known values.
func (s ArticleStatus) Valid() bool {
	return s == StatusPublished || s == StatusDraft
}

// ArticleMeta is the metadata half of an article. The slug is the global
// identifier: it keys both stored objects (docs/{slug}.json and
// docs/{slug}.md) and the public URL. Metadata and body are written
// together but not transactionally.
type ArticleMeta struct {
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Category  *string       `json:"category"` // Category.ID, nil for uncategorized
	Status    ArticleStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Order     int           `json:"order"` // rank within its category
}

// IsPublished returns true if the article is in published status.
func (m *ArticleMeta) IsPublished() bool {
	return m.Status == StatusPublished
}

// Manifest is the derived manifest.json document: every article's metadata
// in order. It is a rebuildable cache over the per-article objects, never
// the canonical record.
type Manifest struct {
	Articles  []ArticleMeta `json:"articles"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ArticleNavigation holds the previous and next articles relative to some
// current slug within an ordered subset. Either side is nil at a boundary.
type ArticleNavigation struct {
	Prev *ArticleMeta `json:"prev"`
	Next *ArticleMeta `json:"next"`
}
