// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown provides the markdown utilities the content repository
// is built on: HTML rendering via goldmark for the editor preview, plus the
// lightweight structural helpers (title/heading extraction, plain-text
// stripping) that feed the search index.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"kbpress/internal/models"
	"kbpress/internal/slug"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // GitHub-Flavored Markdown: tables, strikethrough, autolinks, task lists
		extension.Typographer, // Smart quotes and dashes
		highlighting.NewHighlighting( // Syntax highlighting for fenced code blocks
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // Auto-generate heading IDs for anchors
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(), // Allow raw HTML blocks authored in the editor
	),
)

// ToHTML converts Markdown source into HTML. Raw HTML embedded in the
// Markdown is passed through unchanged (WithUnsafe).
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	titleRe    = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headingRe  = regexp.MustCompile(`(?m)^(#{2,3})\s+(.+)$`)
	h1to6Re    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.+?)\*`)
	strikeRe   = regexp.MustCompile(`~~(.+?)~~`)
	fenceRe    = regexp.MustCompile("(?s)```.*?```")
	codeRe     = regexp.MustCompile("`(.+?)`")
	imageRe    = regexp.MustCompile(`!\[.*?\]\(.+?\)`)
	linkRe     = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
	quoteRe    = regexp.MustCompile(`(?m)^>\s+`)
	bulletRe   = regexp.MustCompile(`(?m)^[-*+]\s+`)
	numberedRe = regexp.MustCompile(`(?m)^\d+\.\s+`)
	hruleRe    = regexp.MustCompile(`(?m)^---$`)
	blanksRe   = regexp.MustCompile(`\n{3,}`)
)

// ExtractTitle returns the text of the first H1 heading, or "" if the
// document has none.
func ExtractTitle(source string) string {
	m := titleRe.FindStringSubmatch(source)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractHeadings returns all level-2 and level-3 headings in document
// order, each with a slugified anchor id.
func ExtractHeadings(source string) []models.Heading {
	var headings []models.Heading
	for _, m := range headingRe.FindAllStringSubmatch(source, -1) {
		text := strings.TrimSpace(m[2])
		headings = append(headings, models.Heading{
			ID:    slug.Generate(text),
			Text:  text,
			Level: len(m[1]),
		})
	}
	return headings
}

// Strip removes markdown syntax, leaving plain text for the search index.
// Heading markers, emphasis, code fences, links, images, blockquote and
// list markers all go; runs of blank lines collapse to one.
func Strip(source string) string {
	s := h1to6Re.ReplaceAllString(source, "")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = strikeRe.ReplaceAllString(s, "$1")
	s = fenceRe.ReplaceAllString(s, "")
	s = codeRe.ReplaceAllString(s, "$1")
	s = imageRe.ReplaceAllString(s, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = quoteRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "")
	s = numberedRe.ReplaceAllString(s, "")
	s = hruleRe.ReplaceAllString(s, "")
	s = blanksRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Excerpt returns the stripped text truncated to at most max runes.
func Excerpt(source string, max int) string {
	s := Strip(source)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
