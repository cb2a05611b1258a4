package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Storage backends selectable through ONBOARDING_STORAGE.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config captures environment driven configuration values for the onboarding service.
type Config struct {
	HTTPPort        int
	Storage         string
	SQLiteDSN       string
	CatalogSeedPath string
	LogLevel        slog.Level
}

// Load parses configuration values from the current process environment.
//
// Every field has a default, so an empty environment yields a runnable
// configuration. Invalid values are reported together rather than one at a
// time.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		Storage:   StorageSQLite,
		SQLiteDSN: "file:onboarding.db?_foreign_keys=on",
		LogLevel:  slog.LevelInfo,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ONBOARDING_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ONBOARDING_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if storage := strings.TrimSpace(os.Getenv("ONBOARDING_STORAGE")); storage != "" {
		switch storage {
		case StorageSQLite, StorageMemory:
			cfg.Storage = storage
		default:
			invalid = append(invalid, "ONBOARDING_STORAGE")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("ONBOARDING_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if seedPath := strings.TrimSpace(os.Getenv("ONBOARDING_CATALOG_SEED")); seedPath != "" {
		cfg.CatalogSeedPath = seedPath
	}

	if levelValue := strings.TrimSpace(os.Getenv("ONBOARDING_LOG_LEVEL")); levelValue != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelValue)); err != nil {
			invalid = append(invalid, "ONBOARDING_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("valeurs de variables d'environnement invalides : %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
