// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package importer ingests a ZIP of Markdown files and turns its folder
// layout into categories and articles. The top-level folder of each file
// becomes (or reuses) a category, a second folder level becomes a
// subcategory, and each .md file becomes an article. Category changes are
// committed once before any article is written; article writes run
// concurrently in bounded batches and individual failures are reported
// per file without aborting the run.
package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"kbpress/internal/cache"
	"kbpress/internal/markdown"
	"kbpress/internal/models"
	"kbpress/internal/store"
)

const (
	// MaxZipSize is the largest archive accepted for import (50MB).
	MaxZipSize = 50 * 1024 * 1024

	// batchSize bounds how many article writes run concurrently.
	batchSize = 10
)

// defaultIcon is the generic document icon assigned to imported categories.
const defaultIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M14.5 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V7.5L14.5 2z"/><polyline points="14 2 14 8 20 8"/></svg>`

// colorPalette supplies background colors for imported categories, cycled
// starting after the already-existing categories.
var colorPalette = []string{
	"#EEF2FF", "#FEF3C7", "#DCFCE7", "#FFE4E6",
	"#E0E7FF", "#FDE68A", "#D1FAE5", "#FECDD3",
	"#DBEAFE", "#FEF9C3", "#CFFAFE", "#FCE7F3",
}

// Conflict strategies for articles whose slug already exists.
const (
	ConflictSkip      = "skip"
	ConflictOverwrite = "overwrite"
)

// Options controls how an import run treats the incoming files.
type Options struct {
	// DefaultStatus is assigned to every imported article. Defaults to
	// published.
	DefaultStatus models.ArticleStatus

	// ConflictStrategy decides what happens when an imported slug already
	// exists: ConflictSkip leaves the existing article untouched,
	// ConflictOverwrite replaces it. Defaults to ConflictSkip.
	ConflictStrategy string
}

// Report summarizes an import run. Per-file failures land in Errors; the
// run itself still succeeds.
type Report struct {
	Success              bool     `json:"success"`
	CategoriesCreated    []string `json:"categoriesCreated"`
	CategoriesExisting   []string `json:"categoriesExisting"`
	SubcategoriesCreated []string `json:"subcategoriesCreated"`
	ArticlesCreated      []string `json:"articlesCreated"`
	ArticlesSkipped      []string `json:"articlesSkipped"`
	ArticlesOverwritten  []string `json:"articlesOverwritten"`
	Errors               []string `json:"errors"`
	TotalFiles           int      `json:"totalFiles"`
	TotalProcessed       int      `json:"totalProcessed"`
}

func newReport() *Report {
	return &Report{
		Success:              true,
		CategoriesCreated:    []string{},
		CategoriesExisting:   []string{},
		SubcategoriesCreated: []string{},
		ArticlesCreated:      []string{},
		ArticlesSkipped:      []string{},
		ArticlesOverwritten:  []string{},
		Errors:               []string{},
	}
}

// fileEntry is one .md file keyed by its archive path. subfolder is empty
// for files directly inside a top-level folder.
type fileEntry struct {
	filename  string
	path      string
	subfolder string
}

// task is a planned article write.
type task struct {
	slug        string
	content     string
	meta        models.ArticleMeta
	isOverwrite bool
}

// Importer runs ZIP imports against the content stores.
type Importer struct {
	categories *store.CategoryStore
	articles   *store.ArticleStore
	cache      *cache.Cache
	now        func() time.Time
}

// New returns an Importer writing through the given stores.
func New(categories *store.CategoryStore, articles *store.ArticleStore, c *cache.Cache) *Importer {
	return &Importer{
		categories: categories,
		articles:   articles,
		cache:      c,
		now:        time.Now,
	}
}

// Run executes a full import of the given ZIP archive. It returns an error
// only when the archive is unreadable or the category/article inventories
// cannot be loaded or saved; per-file problems are collected in the report.
func (imp *Importer) Run(ctx context.Context, data []byte, opts Options) (*Report, error) {
	if opts.DefaultStatus == "" {
		opts.DefaultStatus = models.StatusPublished
	}
	if !opts.DefaultStatus.Valid() {
		return nil, fmt.Errorf("invalid default status %q", opts.DefaultStatus)
	}
	if opts.ConflictStrategy == "" {
		opts.ConflictStrategy = ConflictSkip
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	// Collect the Markdown entries, keyed by archive path.
	entries := make(map[string]*zip.File)
	var mdPaths []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".md") {
			continue
		}
		entries[f.Name] = f
		mdPaths = append(mdPaths, f.Name)
	}

	report := newReport()
	if len(mdPaths) == 0 {
		report.Errors = append(report.Errors, "no .md files found in the ZIP")
		return report, nil
	}
	report.TotalFiles = len(mdPaths)

	folderMap := groupByFolder(mdPaths)

	existing, err := imp.categories.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	existingArticles, err := imp.articles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load article inventory: %w", err)
	}
	existingSlugs := make(map[string]bool, len(existingArticles))
	for _, a := range existingArticles {
		existingSlugs[a.Slug] = true
	}

	categories, categoryMap := imp.planCategories(existing.Categories, folderMap, report)
	if err := imp.categories.Save(ctx, models.CategoriesData{Categories: categories}); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}

	tasks := imp.planArticles(folderMap, categoryMap, entries, existingSlugs, opts, report)
	imp.commitArticles(ctx, tasks, report)

	// Drop everything cached: categories, lists, bodies, and the search
	// index are all potentially stale after a bulk import.
	imp.cache.Clear()

	return report, nil
}

// groupByFolder buckets the .md paths by top-level folder, stripping a
// single wrapper directory when every file sits at least three segments
// deep under the same first segment (the "zip of a folder" case). Files
// not inside any folder are ignored — the folder is what names the
// category.
func groupByFolder(mdPaths []string) map[string][]fileEntry {
	parts := make([][]string, len(mdPaths))
	minDepth := -1
	for i, p := range mdPaths {
		parts[i] = strings.Split(p, "/")
		if minDepth == -1 || len(parts[i]) < minDepth {
			minDepth = len(parts[i])
		}
	}

	stripPrefix := ""
	if minDepth >= 3 {
		common := true
		for _, p := range parts {
			if p[0] != parts[0][0] {
				common = false
				break
			}
		}
		if common {
			stripPrefix = parts[0][0] + "/"
		}
	}

	folderMap := make(map[string][]fileEntry)
	for _, mdPath := range mdPaths {
		clean := strings.TrimPrefix(mdPath, stripPrefix)
		segments := strings.Split(clean, "/")
		if len(segments) < 2 {
			continue
		}

		topFolder := segments[0]
		entry := fileEntry{
			filename: segments[len(segments)-1],
			path:     mdPath,
		}
		if len(segments) >= 3 {
			entry.subfolder = segments[1]
		}
		folderMap[topFolder] = append(folderMap[topFolder], entry)
	}
	return folderMap
}

// planCategories maps every folder (and folder/subfolder) to a category
// id, reusing existing categories by slug and creating the rest. Returns
// the full category list to persist and the folder-key to id mapping.
func (imp *Importer) planCategories(existing []models.Category, folderMap map[string][]fileEntry, report *Report) ([]models.Category, map[string]string) {
	categories := make([]models.Category, len(existing))
	copy(categories, existing)

	categoryMap := make(map[string]string)
	colorIndex := len(existing)

	folders := make([]string, 0, len(folderMap))
	for folder := range folderMap {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	for _, folder := range folders {
		var parentID string

		if c := store.FindBySlug(existing, folder, nil); c != nil {
			parentID = c.ID
			if !contains(report.CategoriesExisting, c.Title) {
				report.CategoriesExisting = append(report.CategoriesExisting, c.Title)
			}
		} else if c := store.FindBySlug(categories, folder, nil); c != nil {
			// Already created earlier in this run.
			parentID = c.ID
		} else {
			created := models.Category{
				ID:          models.NewCategoryID(),
				Title:       titleCase(folder),
				Slug:        folder,
				Icon:        defaultIcon,
				IconBgColor: colorPalette[colorIndex%len(colorPalette)],
				Order:       countTopLevel(categories),
			}
			categories = append(categories, created)
			parentID = created.ID
			report.CategoriesCreated = append(report.CategoriesCreated, created.Title)
			colorIndex++
		}
		categoryMap[folder] = parentID

		for _, sub := range uniqueSubfolders(folderMap[folder]) {
			subKey := folder + "/" + sub

			if c := store.FindBySlug(existing, sub, &parentID); c != nil {
				categoryMap[subKey] = c.ID
				continue
			}
			if c := store.FindBySlug(categories, sub, &parentID); c != nil {
				categoryMap[subKey] = c.ID
				continue
			}

			created := models.Category{
				ID:          models.NewCategoryID(),
				Title:       titleCase(sub),
				Slug:        sub,
				Icon:        defaultIcon,
				IconBgColor: colorPalette[colorIndex%len(colorPalette)],
				Order:       countChildren(categories, parentID),
				ParentID:    &parentID,
			}
			categories = append(categories, created)
			categoryMap[subKey] = created.ID
			report.SubcategoriesCreated = append(report.SubcategoriesCreated, titleCase(folder)+" > "+created.Title)
			colorIndex++
		}
	}

	return categories, categoryMap
}

// planArticles reads each file from the archive and builds the write
// tasks. Within a target category, files are ordered by filename and
// numbered from zero. Conflicting slugs are skipped or marked for
// overwrite per the strategy; unreadable entries become report errors.
func (imp *Importer) planArticles(folderMap map[string][]fileEntry, categoryMap map[string]string, entries map[string]*zip.File, existingSlugs map[string]bool, opts Options, report *Report) []task {
	var tasks []task

	folders := make([]string, 0, len(folderMap))
	for folder := range folderMap {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	for _, folder := range folders {
		grouped := make(map[string][]fileEntry)
		for _, f := range folderMap[folder] {
			targetKey := folder
			if f.subfolder != "" {
				targetKey = folder + "/" + f.subfolder
			}
			grouped[targetKey] = append(grouped[targetKey], f)
		}

		targets := make([]string, 0, len(grouped))
		for key := range grouped {
			targets = append(targets, key)
		}
		sort.Strings(targets)

		for _, targetKey := range targets {
			categoryID := categoryMap[targetKey]
			files := grouped[targetKey]
			sort.Slice(files, func(i, j int) bool {
				return files[i].filename < files[j].filename
			})

			for i, f := range files {
				slug := strings.TrimSuffix(f.filename, ".md")

				entry, ok := entries[f.path]
				if !ok {
					continue
				}
				content, err := readEntry(entry)
				if err != nil {
					report.Errors = append(report.Errors, fmt.Sprintf("error processing %s: %v", f.path, err))
					report.TotalProcessed++
					continue
				}

				if existingSlugs[slug] && opts.ConflictStrategy == ConflictSkip {
					report.ArticlesSkipped = append(report.ArticlesSkipped, slug)
					report.TotalProcessed++
					continue
				}

				title := markdown.ExtractTitle(content)
				if title == "" {
					title = titleCase(slug)
				}

				now := imp.now().UTC()
				catID := categoryID
				tasks = append(tasks, task{
					slug:    slug,
					content: content,
					meta: models.ArticleMeta{
						Title:     title,
						Slug:      slug,
						Category:  &catID,
						Status:    opts.DefaultStatus,
						CreatedAt: now,
						UpdatedAt: now,
						Order:     i,
					},
					isOverwrite: existingSlugs[slug],
				})
			}
		}
	}

	return tasks
}

// commitArticles writes the planned articles with bounded concurrency.
// A failed write is reported and counted but never stops the rest.
func (imp *Importer) commitArticles(ctx context.Context, tasks []task, report *Report) {
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(batchSize)

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			err := imp.articles.SaveMeta(ctx, t.slug, t.meta)
			if err == nil {
				err = imp.articles.SaveContent(ctx, t.slug, t.content)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("error saving %s: %v", t.slug, err))
			} else if t.isOverwrite {
				report.ArticlesOverwritten = append(report.ArticlesOverwritten, t.slug)
			} else {
				report.ArticlesCreated = append(report.ArticlesCreated, t.slug)
			}
			report.TotalProcessed++
			return nil
		})
	}
	g.Wait()
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// titleCase turns a kebab-case slug into a display title
// ("getting-started" -> "Getting Started").
func titleCase(kebab string) string {
	words := strings.Split(kebab, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// uniqueSubfolders returns the distinct non-empty subfolder names among
// the entries, sorted for deterministic processing order.
func uniqueSubfolders(entries []fileEntry) []string {
	seen := map[string]bool{}
	var subs []string
	for _, e := range entries {
		if e.subfolder == "" || seen[e.subfolder] {
			continue
		}
		seen[e.subfolder] = true
		subs = append(subs, e.subfolder)
	}
	sort.Strings(subs)
	return subs
}

func countTopLevel(categories []models.Category) int {
	n := 0
	for _, c := range categories {
		if c.IsTopLevel() {
			n++
		}
	}
	return n
}

func countChildren(categories []models.Category, parentID string) int {
	n := 0
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			n++
		}
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
