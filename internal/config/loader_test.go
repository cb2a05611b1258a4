package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"ONBOARDING_HTTP_PORT",
			"ONBOARDING_STORAGE",
			"ONBOARDING_SQLITE_DSN",
			"ONBOARDING_CATALOG_SEED",
			"ONBOARDING_LOG_LEVEL",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.Storage != StorageSQLite {
			t.Fatalf("expected default storage sqlite, got %q", cfg.Storage)
		}
		if cfg.SQLiteDSN != "file:onboarding.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("expected default log level info, got %v", cfg.LogLevel)
		}
	})

	t.Run("parses provided values", func(t *testing.T) {
		t.Setenv("ONBOARDING_HTTP_PORT", "9090")
		t.Setenv("ONBOARDING_STORAGE", "memory")
		t.Setenv("ONBOARDING_SQLITE_DSN", "file:/tmp/onboarding.db")
		t.Setenv("ONBOARDING_CATALOG_SEED", "/etc/onboarding/catalog.yaml")
		t.Setenv("ONBOARDING_LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.Storage != StorageMemory {
			t.Fatalf("expected memory storage, got %q", cfg.Storage)
		}
		if cfg.SQLiteDSN != "file:/tmp/onboarding.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.CatalogSeedPath != "/etc/onboarding/catalog.yaml" {
			t.Fatalf("unexpected seed path: %q", cfg.CatalogSeedPath)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Fatalf("expected debug level, got %v", cfg.LogLevel)
		}
	})

	t.Run("reports every invalid value", func(t *testing.T) {
		t.Setenv("ONBOARDING_HTTP_PORT", "-1")
		t.Setenv("ONBOARDING_STORAGE", "postgres")
		t.Setenv("ONBOARDING_LOG_LEVEL", "loud")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for invalid values")
		}
		for _, key := range []string{"ONBOARDING_HTTP_PORT", "ONBOARDING_STORAGE", "ONBOARDING_LOG_LEVEL"} {
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("expected %s in error, got %q", key, err.Error())
			}
		}
	})
}
