package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_HOST", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("STORAGE_BASE_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("env: got %q, want %q", cfg.Env, "development")
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev() in default environment")
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %q, want %q", cfg.Addr(), "0.0.0.0:8080")
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Errorf("cache ttl: got %v, want %v", cfg.CacheTTL, 300*time.Second)
	}
	if cfg.StorageBasePath != "kbpress" {
		t.Errorf("base path: got %q, want %q", cfg.StorageBasePath, "kbpress")
	}
}

func TestLoadCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("cache ttl: got %v, want %v", cfg.CacheTTL, time.Minute)
	}
}

func TestLoadCacheTTLInvalid(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "abc")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric CACHE_TTL_SECONDS")
	}
}

func TestLoadProductionRequiresToken(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_TOKEN", "")
	t.Setenv("ADMIN_TOKEN_HASH", "")
	t.Setenv("STORAGE_BUCKET", "kb")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when no admin token is configured in production")
	}

	t.Setenv("ADMIN_TOKEN", "secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDev() {
		t.Error("production config reported IsDev()")
	}
}

func TestLoadProductionRequiresBucket(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("STORAGE_BUCKET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when STORAGE_BUCKET is missing in production")
	}
}
