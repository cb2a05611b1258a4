package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence/memory"
)

func validEquipmentInput() EquipmentInput {
	return EquipmentInput{
		EmployeeID:    "employee-1",
		EquipmentType: "Ordinateur portable",
		Brand:         "Dell",
		Model:         "Latitude 5440",
		SerialNumber:  "SN-0001",
		Condition:     "Neuf",
		AssignedDate:  testClock,
		Status:        "Attribué",
		AssignedBy:    "Jean Martin",
	}
}

func newEquipmentFixture(t *testing.T) (*memory.Storage, *EquipmentService) {
	t.Helper()
	store := memory.NewStorage()
	seedArrival(t, store, "employee-1", "Claire", testClock.AddDate(0, 0, 1), onboarding.EmployeePreparation)
	svc := NewEquipmentService(store, store, sequenceIDs("equipment"), fixedClock)
	return store, svc
}

func TestEquipmentService_CreateEquipment(t *testing.T) {
	t.Run("validates required attributes", func(t *testing.T) {
		_, svc := newEquipmentFixture(t)

		_, err := svc.CreateEquipment(context.Background(), EquipmentInput{})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"employeeId", "equipmentType", "serialNumber", "assignedDate"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("propagates ErrNotFound for unknown employees", func(t *testing.T) {
		_, svc := newEquipmentFixture(t)

		input := validEquipmentInput()
		input.EmployeeID = "missing"
		_, err := svc.CreateEquipment(context.Background(), input)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("resolves and freezes the employee display name", func(t *testing.T) {
		_, svc := newEquipmentFixture(t)

		created, err := svc.CreateEquipment(context.Background(), validEquipmentInput())
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if created.EmployeeName != "Claire Moreau" {
			t.Fatalf("expected resolved display name, got %q", created.EmployeeName)
		}
		if created.ID != "equipment-1" {
			t.Fatalf("expected generated identifier, got %q", created.ID)
		}
	})
}

func TestEquipmentService_UpdateEquipment(t *testing.T) {
	t.Run("propagates ErrNotFound", func(t *testing.T) {
		_, svc := newEquipmentFixture(t)

		_, err := svc.UpdateEquipment(context.Background(), "missing", validEquipmentInput())
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("replaces attributes", func(t *testing.T) {
		_, svc := newEquipmentFixture(t)

		created, err := svc.CreateEquipment(context.Background(), validEquipmentInput())
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		input := validEquipmentInput()
		input.Status = "Retourné"
		returned := testClock.AddDate(0, 3, 0)
		input.ReturnDate = &returned

		updated, err := svc.UpdateEquipment(context.Background(), created.ID, input)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if updated.Status != "Retourné" {
			t.Fatalf("expected status to be replaced, got %q", updated.Status)
		}
		if updated.ReturnDate == nil || !updated.ReturnDate.Equal(returned) {
			t.Fatalf("expected return date to be stored, got %v", updated.ReturnDate)
		}
	})
}

func TestEquipmentService_ExportCSV(t *testing.T) {
	_, svc := newEquipmentFixture(t)

	warranty := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	first := validEquipmentInput()
	first.WarrantyEndDate = &warranty
	if _, err := svc.CreateEquipment(context.Background(), first); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	second := validEquipmentInput()
	second.SerialNumber = "SN-0002"
	second.EquipmentType = "Écran"
	if _, err := svc.CreateEquipment(context.Background(), second); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	export, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if export.FileName != "equipements-it-2024-01-17.csv" {
		t.Fatalf("unexpected file name: %q", export.FileName)
	}

	lines := strings.Split(export.Content, "\n")
	if lines[0] != "Employé,Type,Marque,Modèle,N° Série,État,Statut,Date Attribution,Fin Garantie,Attribué par" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected a row per entry, got %d lines", len(lines))
	}

	var withWarranty, withoutWarranty bool
	for _, line := range lines[1:] {
		if strings.Contains(line, "30/06/2026") {
			withWarranty = true
		}
		if strings.Contains(line, ",N/A,") {
			withoutWarranty = true
		}
	}
	if !withWarranty || !withoutWarranty {
		t.Fatalf("expected both warranty renderings, got %q", export.Content)
	}
}

func TestEquipmentService_DeleteEquipment(t *testing.T) {
	_, svc := newEquipmentFixture(t)

	created, err := svc.CreateEquipment(context.Background(), validEquipmentInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := svc.DeleteEquipment(context.Background(), created.ID); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := svc.DeleteEquipment(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
