package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
	"github.com/example/onboarding-tracker/internal/persistence/memory"
)

func seedEmployee(t *testing.T, store *memory.Storage, id string) {
	t.Helper()
	_, err := store.CreateEmployee(context.Background(), persistence.Employee{
		ID:                id,
		FirstName:         "Claire",
		LastName:          "Moreau",
		Position:          "Technicienne",
		Department:        "Production",
		ArrivalDate:       testClock.AddDate(0, 0, 2),
		ContractStartDate: testClock.AddDate(0, 0, 2),
		ContractType:      string(onboarding.ContractCDI),
		Status:            string(onboarding.EmployeePreparation),
		CreatedAt:         testClock,
	})
	if err != nil {
		t.Fatalf("expected employee seed to succeed, got %v", err)
	}
}

func seedCatalogItem(t *testing.T, store *memory.Storage, id string, department onboarding.Department, mandatory bool) {
	t.Helper()
	_, err := store.CreateChecklistItem(context.Background(), persistence.ChecklistItem{
		ID:                id,
		Title:             "Tâche " + id,
		Description:       "Description " + id,
		Responsible:       string(department),
		Mandatory:         mandatory,
		EstimatedDuration: 1,
		Order:             1,
		CreatedAt:         testClock,
		UpdatedAt:         testClock,
	})
	if err != nil {
		t.Fatalf("expected catalog seed to succeed, got %v", err)
	}
}

func TestChecklistService_EnsureInstances(t *testing.T) {
	t.Run("creates one instance per catalog entry", func(t *testing.T) {
		store := memory.NewStorage()
		seedEmployee(t, store, "employee-1")
		seedCatalogItem(t, store, "item-1", onboarding.DepartmentRH, true)
		seedCatalogItem(t, store, "item-2", onboarding.DepartmentIT, false)

		svc := NewChecklistService(store, store, store, sequenceIDs("instance"), fixedClock)

		instances, err := svc.EnsureInstances(context.Background(), "employee-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(instances) != 2 {
			t.Fatalf("expected two instances, got %d", len(instances))
		}
		for _, instance := range instances {
			if instance.Status != onboarding.TaskNotStarted {
				t.Fatalf("expected fresh instances to be Non commencé, got %v", instance.Status)
			}
		}
	})

	t.Run("is idempotent and preserves progress", func(t *testing.T) {
		store := memory.NewStorage()
		seedEmployee(t, store, "employee-1")
		seedCatalogItem(t, store, "item-1", onboarding.DepartmentRH, true)

		svc := NewChecklistService(store, store, store, sequenceIDs("instance"), fixedClock)

		if _, err := svc.EnsureInstances(context.Background(), "employee-1"); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if _, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskInProgress,
		}); err != nil {
			t.Fatalf("expected status update to succeed, got %v", err)
		}

		seedCatalogItem(t, store, "item-2", onboarding.DepartmentIT, false)
		instances, err := svc.EnsureInstances(context.Background(), "employee-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(instances) != 2 {
			t.Fatalf("expected the new catalog entry to be instantiated, got %d", len(instances))
		}
		for _, instance := range instances {
			if instance.ChecklistItemID == "item-1" && instance.Status != onboarding.TaskInProgress {
				t.Fatalf("expected existing progress to survive, got %v", instance.Status)
			}
		}
	})

	t.Run("propagates ErrNotFound for unknown employees", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewChecklistService(store, store, store, sequenceIDs("instance"), fixedClock)

		_, err := svc.EnsureInstances(context.Background(), "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestChecklistService_SetTaskStatus(t *testing.T) {
	newFixture := func(t *testing.T) (*memory.Storage, *ChecklistService) {
		t.Helper()
		store := memory.NewStorage()
		seedEmployee(t, store, "employee-1")
		seedCatalogItem(t, store, "item-1", onboarding.DepartmentRH, true)
		seedCatalogItem(t, store, "item-2", onboarding.DepartmentIT, true)
		seedCatalogItem(t, store, "item-3", onboarding.DepartmentSecurity, false)
		svc := NewChecklistService(store, store, store, sequenceIDs("instance"), fixedClock)
		if _, err := svc.EnsureInstances(context.Background(), "employee-1"); err != nil {
			t.Fatalf("expected provisioning to succeed, got %v", err)
		}
		return store, svc
	}

	t.Run("rejects unknown statuses", func(t *testing.T) {
		_, svc := newFixture(t)

		_, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: "Terminé",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("stamps completion with the default author", func(t *testing.T) {
		_, svc := newFixture(t)

		result, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskCompleted,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if result.Instance.CompletedDate == nil || !result.Instance.CompletedDate.Equal(testClock) {
			t.Fatalf("expected completion date from injected clock, got %v", result.Instance.CompletedDate)
		}
		if result.Instance.CompletedBy != DefaultCompletedBy {
			t.Fatalf("expected default author %q, got %q", DefaultCompletedBy, result.Instance.CompletedBy)
		}
		if result.EmployeeCompleted {
			t.Fatal("expected onboarding to stay open while a mandatory task remains")
		}
	})

	t.Run("keeps and clears notes through the pointer", func(t *testing.T) {
		_, svc := newFixture(t)

		note := "Prévoir la visite médicale"
		result, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskInProgress, Notes: &note,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if result.Instance.Notes != note {
			t.Fatalf("expected notes to be stored, got %q", result.Instance.Notes)
		}

		result, err = svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskInProgress,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if result.Instance.Notes != note {
			t.Fatalf("expected nil pointer to leave notes unchanged, got %q", result.Instance.Notes)
		}

		empty := ""
		result, err = svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskInProgress, Notes: &empty,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if result.Instance.Notes != "" {
			t.Fatalf("expected empty pointer to clear notes, got %q", result.Instance.Notes)
		}
	})

	t.Run("promotes the employee once mandatory tasks complete", func(t *testing.T) {
		store, svc := newFixture(t)

		if _, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskCompleted, CompletedBy: "Marie Dubois",
		}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		result, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-2", Status: onboarding.TaskCompleted,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !result.EmployeeCompleted {
			t.Fatal("expected onboarding to complete, the optional task never gates")
		}

		employee, err := store.GetEmployee(context.Background(), "employee-1")
		if err != nil {
			t.Fatalf("expected employee fetch to succeed, got %v", err)
		}
		if employee.Status != string(onboarding.EmployeeCompleted) {
			t.Fatalf("expected employee status Complété, got %q", employee.Status)
		}
		if employee.CompletedAt == nil || !employee.CompletedAt.Equal(testClock) {
			t.Fatalf("expected CompletedAt from injected clock, got %v", employee.CompletedAt)
		}
	})

	t.Run("reverting a task keeps its completion stamp", func(t *testing.T) {
		_, svc := newFixture(t)

		if _, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskCompleted, CompletedBy: "Marie Dubois",
		}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		result, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskInProgress,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if result.Instance.Status != onboarding.TaskInProgress {
			t.Fatalf("expected status En cours, got %q", result.Instance.Status)
		}
		if result.Instance.CompletedDate == nil || !result.Instance.CompletedDate.Equal(testClock) {
			t.Fatalf("expected the prior completion date to survive, got %v", result.Instance.CompletedDate)
		}
		if result.Instance.CompletedBy != "Marie Dubois" {
			t.Fatalf("expected the prior sign-off to survive, got %q", result.Instance.CompletedBy)
		}
	})

	t.Run("auto-completes when the catalog has no mandatory task", func(t *testing.T) {
		store := memory.NewStorage()
		seedEmployee(t, store, "employee-1")
		seedCatalogItem(t, store, "item-1", onboarding.DepartmentRH, false)
		svc := NewChecklistService(store, store, store, sequenceIDs("instance"), fixedClock)
		if _, err := svc.EnsureInstances(context.Background(), "employee-1"); err != nil {
			t.Fatalf("expected provisioning to succeed, got %v", err)
		}

		result, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskInProgress,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !result.EmployeeCompleted {
			t.Fatal("expected an empty mandatory set to complete trivially")
		}
	})

	t.Run("propagates ErrNotFound for unknown instances", func(t *testing.T) {
		_, svc := newFixture(t)

		_, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
			EmployeeID: "employee-1", ChecklistItemID: "missing", Status: onboarding.TaskCompleted,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestChecklistService_DepartmentStats(t *testing.T) {
	store := memory.NewStorage()
	seedEmployee(t, store, "employee-1")
	seedCatalogItem(t, store, "item-1", onboarding.DepartmentRH, true)
	seedCatalogItem(t, store, "item-2", onboarding.DepartmentRH, false)
	seedCatalogItem(t, store, "item-3", onboarding.DepartmentIT, true)
	svc := NewChecklistService(store, store, store, sequenceIDs("instance"), fixedClock)
	if _, err := svc.EnsureInstances(context.Background(), "employee-1"); err != nil {
		t.Fatalf("expected provisioning to succeed, got %v", err)
	}

	if _, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
		EmployeeID: "employee-1", ChecklistItemID: "item-1", Status: onboarding.TaskCompleted,
	}); err != nil {
		t.Fatalf("expected status update to succeed, got %v", err)
	}
	if _, err := svc.SetTaskStatus(context.Background(), SetTaskStatusParams{
		EmployeeID: "employee-1", ChecklistItemID: "item-2", Status: onboarding.TaskInProgress,
	}); err != nil {
		t.Fatalf("expected status update to succeed, got %v", err)
	}

	stats, err := svc.DepartmentStats(context.Background(), "employee-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected stats for all departments, got %d", len(stats))
	}

	byDepartment := make(map[onboarding.Department]DepartmentStats, len(stats))
	for _, entry := range stats {
		byDepartment[entry.Department] = entry
	}
	rh := byDepartment[onboarding.DepartmentRH]
	if rh.Total != 2 || rh.Completed != 1 || rh.InProgress != 1 || rh.Mandatory != 1 {
		t.Fatalf("unexpected RH stats: %+v", rh)
	}
	it := byDepartment[onboarding.DepartmentIT]
	if it.Total != 1 || it.Completed != 0 {
		t.Fatalf("unexpected IT stats: %+v", it)
	}
	security := byDepartment[onboarding.DepartmentSecurity]
	if security.Total != 0 {
		t.Fatalf("unexpected Sécurité stats: %+v", security)
	}
}
