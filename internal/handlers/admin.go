// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"kbpress/internal/importer"
	"kbpress/internal/markdown"
	"kbpress/internal/models"
)

// zipContentTypes are the MIME types browsers report for ZIP uploads.
var zipContentTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// Import ingests an uploaded ZIP of Markdown files. Per-file failures
// land in the report; the response is 200 even when some files failed.
func (a *API) Import(w http.ResponseWriter, r *http.Request) {
	// Limit request body to the archive cap plus form field overhead.
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxZipSize+1024)
	if err := r.ParseMultipartForm(importer.MaxZipSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum 50MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, ".zip") && !zipContentTypes[header.Header.Get("Content-Type")] {
		writeError(w, http.StatusBadRequest, "Invalid file type. Please upload a .zip file")
		return
	}
	if header.Size > importer.MaxZipSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum 50MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	opts := importer.Options{
		DefaultStatus:    models.ArticleStatus(r.FormValue("defaultStatus")),
		ConflictStrategy: r.FormValue("conflictStrategy"),
	}

	report, err := a.importer.Run(r.Context(), data, opts)
	if err != nil {
		slog.Error("import failed", "error", err)
		writeError(w, http.StatusBadRequest, "Import failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// CachePurge drops every cached entry. The next reads repopulate from
// the object store.
func (a *API) CachePurge(w http.ResponseWriter, _ *http.Request) {
	a.cache.Clear()
	writeSuccess(w)
}

// Preview renders Markdown to HTML for the editor's live preview.
func (a *API) Preview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	html, err := markdown.ToHTML(body.Content)
	if err != nil {
		slog.Error("render preview", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}
