// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// S3-compatible object storage
	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageBasePath  string

	// Process-local cache
	CacheTTL time.Duration

	// Admin authentication. AdminTokenHash (bcrypt) takes precedence over
	// the plain AdminToken when both are set.
	AdminToken     string
	AdminTokenHash string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageRegion:    envOrDefault("STORAGE_REGION", "auto"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY_ID"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		StorageBucket:    os.Getenv("STORAGE_BUCKET"),
		StorageBasePath:  envOrDefault("STORAGE_BASE_PATH", "kbpress"),

		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
	}

	ttlSeconds := 300
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL_SECONDS must be an integer: %w", err)
		}
		ttlSeconds = n
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	if cfg.Env == "production" {
		if cfg.AdminToken == "" && cfg.AdminTokenHash == "" {
			return nil, fmt.Errorf("ADMIN_TOKEN or ADMIN_TOKEN_HASH must be set in production")
		}
		if cfg.StorageBucket == "" {
			return nil, fmt.Errorf("STORAGE_BUCKET must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
