// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SearchEntry is one flattened, denormalized row of the full-text search
// index. Derived entirely from published articles and the category tree;
// safe to discard and rebuild at any time.
type SearchEntry struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content"` // stripped markdown body, truncated
	Headings   []string `json:"headings"`
	Breadcrumb string   `json:"breadcrumb"`
}

// SearchIndex is the search-index.json document.
type SearchIndex struct {
	Entries []SearchEntry `json:"entries"`
}

// Heading is a level-2 or level-3 markdown heading with its anchor id.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}
