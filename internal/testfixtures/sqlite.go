package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/onboarding-tracker/internal/persistence"
	"github.com/example/onboarding-tracker/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Items         persistence.ChecklistItemRepository
	Instances     persistence.EmployeeChecklistRepository
	Employees     persistence.EmployeeRepository
	Responsables  persistence.ResponsableRepository
	Notifications persistence.NotificationRepository
	Equipment     persistence.EquipmentRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "onboarding.db")

	pool, err := sqlite.Open("file:" + path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Items:         sqlite.NewChecklistItemRepository(pool),
		Instances:     sqlite.NewEmployeeChecklistRepository(pool),
		Employees:     sqlite.NewEmployeeRepository(pool),
		Responsables:  sqlite.NewResponsableRepository(pool),
		Notifications: sqlite.NewNotificationRepository(pool),
		Equipment:     sqlite.NewEquipmentRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
