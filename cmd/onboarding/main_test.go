package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/onboarding-tracker/internal/config"
)

func TestOpenRepositoriesMemory(t *testing.T) {
	repos, err := openRepositories(context.Background(), config.Config{Storage: config.StorageMemory})
	if err != nil {
		t.Fatalf("openRepositories failed: %v", err)
	}
	defer repos.close()

	if repos.Items == nil || repos.Employees == nil || repos.Equipment == nil {
		t.Fatal("expected every repository to be wired")
	}
}

func TestOpenRepositoriesSQLiteMigrates(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "onboarding.db")
	repos, err := openRepositories(context.Background(), config.Config{Storage: config.StorageSQLite, SQLiteDSN: dsn})
	if err != nil {
		t.Fatalf("openRepositories failed: %v", err)
	}
	defer repos.close()

	items, err := repos.Items.ListChecklistItems(context.Background())
	if err != nil {
		t.Fatalf("expected migrated schema, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty catalog, got %d items", len(items))
	}
}

func TestSeedCatalog(t *testing.T) {
	repos, err := openRepositories(context.Background(), config.Config{Storage: config.StorageMemory})
	if err != nil {
		t.Fatalf("openRepositories failed: %v", err)
	}
	defer repos.close()

	now := time.Date(2024, time.January, 17, 9, 0, 0, 0, time.UTC)
	if err := seedCatalog(context.Background(), repos.Items, "", now); err != nil {
		t.Fatalf("seedCatalog failed: %v", err)
	}

	seeded, err := repos.Items.ListChecklistItems(context.Background())
	if err != nil {
		t.Fatalf("list after seed failed: %v", err)
	}
	if len(seeded) == 0 {
		t.Fatal("expected the embedded catalog to be loaded")
	}

	// A second run must not duplicate operator data.
	if err := seedCatalog(context.Background(), repos.Items, "", now); err != nil {
		t.Fatalf("second seedCatalog failed: %v", err)
	}
	again, err := repos.Items.ListChecklistItems(context.Background())
	if err != nil {
		t.Fatalf("list after reseed failed: %v", err)
	}
	if len(again) != len(seeded) {
		t.Fatalf("expected %d items after reseed, got %d", len(seeded), len(again))
	}
}
