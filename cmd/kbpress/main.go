// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the kbpress server. It loads
// configuration, connects to object storage, wires the stores and the
// JSON API, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kbpress/internal/auth"
	"kbpress/internal/cache"
	"kbpress/internal/config"
	"kbpress/internal/handlers"
	"kbpress/internal/importer"
	"kbpress/internal/router"
	"kbpress/internal/storage"
	"kbpress/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to S3-compatible object storage, or fall back to the
	// in-memory store for local development without credentials.
	var objectStore storage.Store
	if cfg.StorageEndpoint != "" && cfg.StorageAccessKey != "" {
		s3, err := storage.NewS3(
			cfg.StorageEndpoint, cfg.StorageRegion,
			cfg.StorageAccessKey, cfg.StorageSecretKey,
			cfg.StorageBucket, cfg.StorageBasePath,
		)
		if err != nil {
			slog.Error("failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		objectStore = s3
		slog.Info("object storage connected",
			"endpoint", cfg.StorageEndpoint,
			"bucket", cfg.StorageBucket,
			"base_path", cfg.StorageBasePath,
		)
	} else if cfg.IsDev() {
		objectStore = storage.NewMemory()
		slog.Warn("object storage not configured — using in-memory store, content will not persist")
	} else {
		slog.Error("object storage must be configured outside development")
		os.Exit(1)
	}

	// Process-local TTL cache fronting every store read.
	contentCache := cache.New(cfg.CacheTTL)

	// Content stores.
	manifest := store.NewManifestStore(objectStore)
	articles := store.NewArticleStore(objectStore, contentCache, manifest)
	categories := store.NewCategoryStore(objectStore, contentCache)
	search := store.NewSearchStore(objectStore, contentCache, articles, categories)
	siteConfig := store.NewSiteConfigStore(objectStore, contentCache)

	imp := importer.New(categories, articles, contentCache)

	// In non-development environments, mark the admin cookie Secure.
	gate := auth.NewGate(cfg.AdminToken, cfg.AdminTokenHash, !cfg.IsDev())

	api := handlers.New(articles, categories, siteConfig, search, imp, gate, contentCache)
	r := router.New(api, gate)

	// WriteTimeout accommodates ZIP imports that write hundreds of
	// objects through the store.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
