package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCatalog_EmbeddedDefault(t *testing.T) {
	now := time.Date(2024, time.January, 17, 9, 0, 0, 0, time.UTC)

	items, err := Catalog("", now)
	if err != nil {
		t.Fatalf("expected embedded catalog to load, got %v", err)
	}
	if len(items) != 24 {
		t.Fatalf("expected 24 default items, got %d", len(items))
	}

	perDepartment := make(map[string]int)
	mandatory := 0
	for _, item := range items {
		perDepartment[item.Responsible]++
		if item.Mandatory {
			mandatory++
		}
		if !item.CreatedAt.Equal(now) || !item.UpdatedAt.Equal(now) {
			t.Fatalf("expected item %q to carry the seed timestamp", item.ID)
		}
	}
	if perDepartment["RH"] != 8 || perDepartment["IT"] != 8 || perDepartment["Sécurité"] != 8 {
		t.Fatalf("expected eight items per department, got %v", perDepartment)
	}
	if mandatory != 19 {
		t.Fatalf("expected nineteen mandatory items, got %d", mandatory)
	}
}

func TestCatalog_CustomFile(t *testing.T) {
	now := time.Date(2024, time.January, 17, 9, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	content := `items:
  - id: custom-1
    title: Tâche maison
    description: Une tâche de test
    responsible: RH
    mandatory: true
    estimatedDuration: 1.5
    order: 1
    category: Test
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	items, err := Catalog(path, now)
	if err != nil {
		t.Fatalf("expected custom catalog to load, got %v", err)
	}
	if len(items) != 1 || items[0].ID != "custom-1" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].EstimatedDuration != 1.5 {
		t.Fatalf("expected fractional duration, got %v", items[0].EstimatedDuration)
	}
}

func TestCatalog_RejectsInvalidSeeds(t *testing.T) {
	now := time.Date(2024, time.January, 17, 9, 0, 0, 0, time.UTC)

	tests := map[string]string{
		"unknown department": `items:
  - id: bad-1
    title: Tâche
    responsible: Finance
    estimatedDuration: 1
`,
		"duplicate id": `items:
  - id: dup-1
    title: Tâche
    responsible: RH
    estimatedDuration: 1
  - id: dup-1
    title: Tâche bis
    responsible: RH
    estimatedDuration: 1
`,
		"empty": `items: []`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("failed to write seed file: %v", err)
			}
			if _, err := Catalog(path, now); err == nil {
				t.Fatal("expected error for invalid seed")
			}
		})
	}
}
