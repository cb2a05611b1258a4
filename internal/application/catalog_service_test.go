package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
	"github.com/example/onboarding-tracker/internal/persistence/memory"
)

var testClock = time.Date(2024, time.January, 17, 9, 0, 0, 0, time.UTC)

func sequenceIDs(prefix string) func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}
}

func fixedClock() time.Time { return testClock }

func TestCatalogService_CreateItem(t *testing.T) {
	t.Run("validates required attributes", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewCatalogService(store, store, nil, nil)

		_, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title:             "  ",
			Description:       "",
			Responsible:       "Finance",
			EstimatedDuration: 0,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"title", "description", "responsible", "estimatedDuration"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("assigns order per responsible department", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewCatalogService(store, store, sequenceIDs("item"), fixedClock)

		first, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title: "Contrat de travail", Description: "Signature du contrat",
			Responsible: onboarding.DepartmentRH, Mandatory: true, EstimatedDuration: 1,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		second, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title: "Badge d'accès", Description: "Création du badge",
			Responsible: onboarding.DepartmentRH, Mandatory: true, EstimatedDuration: 0.5,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		other, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title: "Compte utilisateur", Description: "Création du compte",
			Responsible: onboarding.DepartmentIT, Mandatory: true, EstimatedDuration: 1,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if first.Order != 1 || second.Order != 2 {
			t.Fatalf("expected RH orders 1 and 2, got %d and %d", first.Order, second.Order)
		}
		if other.Order != 1 {
			t.Fatalf("expected IT order to restart at 1, got %d", other.Order)
		}
		if !first.CreatedAt.Equal(testClock) || !first.UpdatedAt.Equal(testClock) {
			t.Fatalf("expected timestamps to use injected clock, got created=%v updated=%v", first.CreatedAt, first.UpdatedAt)
		}
	})
}

func TestCatalogService_UpdateItem(t *testing.T) {
	t.Run("ignores unknown identifiers", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewCatalogService(store, store, sequenceIDs("item"), fixedClock)

		_, found, err := svc.UpdateItem(context.Background(), "missing", ChecklistItemInput{
			Title: "Titre", Description: "Description",
			Responsible: onboarding.DepartmentRH, EstimatedDuration: 1,
		})
		if err != nil {
			t.Fatalf("expected missing item to be a no-op, got %v", err)
		}
		if found {
			t.Fatal("expected found to be false for unknown identifier")
		}
	})

	t.Run("replaces attributes and keeps order", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewCatalogService(store, store, sequenceIDs("item"), fixedClock)

		created, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title: "Contrat", Description: "Signature",
			Responsible: onboarding.DepartmentRH, Mandatory: true, EstimatedDuration: 1,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		updated, found, err := svc.UpdateItem(context.Background(), created.ID, ChecklistItemInput{
			Title: "  Contrat de travail  ", Description: "Signature du contrat",
			Responsible: onboarding.DepartmentRH, Mandatory: false, EstimatedDuration: 2,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !found {
			t.Fatal("expected item to be found")
		}
		if updated.Title != "Contrat de travail" {
			t.Fatalf("expected title to be trimmed, got %q", updated.Title)
		}
		if updated.Mandatory {
			t.Fatal("expected mandatory flag to be replaced")
		}
		if updated.Order != created.Order {
			t.Fatalf("expected order to be preserved, got %d", updated.Order)
		}
	})
}

func TestCatalogService_DeleteItem(t *testing.T) {
	t.Run("ignores unknown identifiers", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewCatalogService(store, store, sequenceIDs("item"), fixedClock)

		if err := svc.DeleteItem(context.Background(), "missing"); err != nil {
			t.Fatalf("expected missing item to be a no-op, got %v", err)
		}
	})

	t.Run("cascades instance deletion", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewCatalogService(store, store, sequenceIDs("item"), fixedClock)

		created, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title: "Contrat", Description: "Signature",
			Responsible: onboarding.DepartmentRH, Mandatory: true, EstimatedDuration: 1,
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		for index := 1; index <= 3; index++ {
			_, err := store.CreateInstance(context.Background(), persistence.EmployeeChecklistItem{
				ID:              fmt.Sprintf("instance-%d", index),
				EmployeeID:      fmt.Sprintf("employee-%d", index),
				ChecklistItemID: created.ID,
				Status:          string(onboarding.TaskNotStarted),
				CreatedAt:       testClock,
				UpdatedAt:       testClock,
			})
			if err != nil {
				t.Fatalf("expected instance creation to succeed, got %v", err)
			}
		}

		if err := svc.DeleteItem(context.Background(), created.ID); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		remaining, err := store.ListInstancesForEmployee(context.Background(), "employee-1")
		if err != nil {
			t.Fatalf("expected list to succeed, got %v", err)
		}
		if len(remaining) != 0 {
			t.Fatalf("expected cascade to remove instances, got %d", len(remaining))
		}
		items, err := svc.ListItems(context.Background())
		if err != nil {
			t.Fatalf("expected list to succeed, got %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected catalog to be empty, got %d", len(items))
		}
	})
}

func TestCatalogService_ListItems(t *testing.T) {
	t.Run("orders by department then order", func(t *testing.T) {
		store := memory.NewStorage()
		svc := NewCatalogService(store, store, sequenceIDs("item"), fixedClock)

		if _, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title: "Habilitation", Description: "Contrôle sécurité",
			Responsible: onboarding.DepartmentSecurity, Mandatory: true, EstimatedDuration: 2,
		}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if _, err := svc.CreateItem(context.Background(), ChecklistItemInput{
			Title: "Contrat", Description: "Signature",
			Responsible: onboarding.DepartmentRH, Mandatory: true, EstimatedDuration: 1,
		}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		items, err := svc.ListItems(context.Background())
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected two items, got %d", len(items))
		}
		if items[0].Responsible != onboarding.DepartmentRH || items[1].Responsible != onboarding.DepartmentSecurity {
			t.Fatalf("expected RH before Sécurité, got %v then %v", items[0].Responsible, items[1].Responsible)
		}
	})
}
