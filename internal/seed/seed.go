// Package seed loads the default onboarding catalog shipped with the binary,
// or an operator supplied replacement, into persistence records.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Items []catalogItem `yaml:"items"`
}

type catalogItem struct {
	ID                string  `yaml:"id"`
	Title             string  `yaml:"title"`
	Description       string  `yaml:"description"`
	Responsible       string  `yaml:"responsible"`
	Mandatory         bool    `yaml:"mandatory"`
	EstimatedDuration float64 `yaml:"estimatedDuration"`
	Order             int     `yaml:"order"`
	Category          string  `yaml:"category"`
}

// Catalog returns the seed catalog as persistence records, stamped with the
// provided time. An empty path selects the embedded default.
func Catalog(path string, now time.Time) ([]persistence.ChecklistItem, error) {
	raw := defaultCatalog
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog seed: %w", err)
		}
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, fmt.Errorf("catalog seed contains no items")
	}

	items := make([]persistence.ChecklistItem, 0, len(file.Items))
	seen := make(map[string]struct{}, len(file.Items))
	for index, entry := range file.Items {
		if entry.ID == "" || entry.Title == "" {
			return nil, fmt.Errorf("catalog seed item %d is missing id or title", index)
		}
		if !onboarding.Department(entry.Responsible).Valid() {
			return nil, fmt.Errorf("catalog seed item %q has unknown department %q", entry.ID, entry.Responsible)
		}
		if entry.EstimatedDuration <= 0 {
			return nil, fmt.Errorf("catalog seed item %q has a non-positive duration", entry.ID)
		}
		if _, ok := seen[entry.ID]; ok {
			return nil, fmt.Errorf("catalog seed item %q appears twice", entry.ID)
		}
		seen[entry.ID] = struct{}{}

		items = append(items, persistence.ChecklistItem{
			ID:                entry.ID,
			Title:             entry.Title,
			Description:       entry.Description,
			Responsible:       entry.Responsible,
			Mandatory:         entry.Mandatory,
			EstimatedDuration: entry.EstimatedDuration,
			Order:             entry.Order,
			Category:          entry.Category,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return items, nil
}
