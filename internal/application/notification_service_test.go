package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
	"github.com/example/onboarding-tracker/internal/persistence/memory"
)

// testClock is a Wednesday; its week runs Monday the 15th through Sunday the
// 21st of January 2024.
func seedArrival(t *testing.T, store *memory.Storage, id, firstName string, arrival time.Time, status onboarding.EmployeeStatus) {
	t.Helper()
	_, err := store.CreateEmployee(context.Background(), persistence.Employee{
		ID:                id,
		FirstName:         firstName,
		LastName:          "Moreau",
		Position:          "Technicien",
		Department:        "Production",
		ArrivalDate:       arrival,
		ContractStartDate: arrival,
		ContractType:      string(onboarding.ContractCDI),
		Status:            string(status),
		CreatedAt:         testClock,
	})
	if err != nil {
		t.Fatalf("expected employee seed to succeed, got %v", err)
	}
}

func newNotificationFixture(t *testing.T) (*memory.Storage, *NotificationService) {
	t.Helper()
	store := memory.NewStorage()
	seedCatalogItem(t, store, "item-1", onboarding.DepartmentRH, true)
	seedCatalogItem(t, store, "item-2", onboarding.DepartmentIT, false)
	svc := NewNotificationService(store, store, store, sequenceIDs("notification"), fixedClock)
	return store, svc
}

func TestNotificationService_Preview(t *testing.T) {
	t.Run("rejects unknown modes", func(t *testing.T) {
		_, svc := newNotificationFixture(t)

		_, err := svc.Preview(context.Background(), NotificationRequest{Mode: "monthly"})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["mode"]; !ok {
			t.Fatalf("expected mode validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("weekly selects the current Monday to Sunday window", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)
		seedArrival(t, store, "employee-2", "Paul", time.Date(2024, time.January, 22, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)

		batch, err := svc.Preview(context.Background(), NotificationRequest{Mode: NotificationWeekly})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if batch.Notification.Subject != "Arrivées de la semaine - 1 employé(s)" {
			t.Fatalf("unexpected subject: %q", batch.Notification.Subject)
		}
		if batch.Notification.Type != "info" {
			t.Fatalf("expected info type, got %q", batch.Notification.Type)
		}
		if len(batch.Artifacts) != 1 || batch.Artifacts[0].EmployeeID != "employee-1" {
			t.Fatalf("expected one artifact for the in-week arrival, got %+v", batch.Artifacts)
		}
	})

	t.Run("tomorrow uses calendar day equality and the warning type", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", time.Date(2024, time.January, 18, 17, 30, 0, 0, time.UTC), onboarding.EmployeePreparation)
		seedArrival(t, store, "employee-2", "Paul", time.Date(2024, time.January, 19, 8, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)

		batch, err := svc.Preview(context.Background(), NotificationRequest{Mode: NotificationTomorrow})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if batch.Notification.Subject != "Arrivée demain - Claire Moreau" {
			t.Fatalf("unexpected subject: %q", batch.Notification.Subject)
		}
		if batch.Notification.Type != "warning" {
			t.Fatalf("expected warning type, got %q", batch.Notification.Type)
		}
	})

	t.Run("custom selects every employee not yet Complété", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", testClock.AddDate(0, 1, 0), onboarding.EmployeePreparation)
		seedArrival(t, store, "employee-2", "Paul", testClock.AddDate(0, -1, 0), onboarding.EmployeeCompleted)

		batch, err := svc.Preview(context.Background(), NotificationRequest{Mode: NotificationCustom, CustomMessage: "Relance"})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if batch.Notification.Subject != "Notification personnalisée - 1 employé(s)" {
			t.Fatalf("unexpected subject: %q", batch.Notification.Subject)
		}
		if !strings.HasPrefix(batch.Notification.Message, "Relance") {
			t.Fatalf("expected custom message prefix, got %q", batch.Notification.Message)
		}
		if !strings.Contains(batch.Notification.Message, "Employés concernés:") {
			t.Fatalf("expected custom section header, got %q", batch.Notification.Message)
		}
	})

	t.Run("builds the matrix with inclusion markers", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)

		batch, err := svc.Preview(context.Background(), NotificationRequest{
			Mode: NotificationWeekly,
			Selections: []EmployeeSelection{{
				EmployeeID: "employee-1",
				Tasks: map[onboarding.Department][]string{
					onboarding.DepartmentRH: {"item-1"},
					onboarding.DepartmentIT: {},
				},
			}},
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(batch.Artifacts) != 1 {
			t.Fatalf("expected one artifact, got %d", len(batch.Artifacts))
		}

		artifact := batch.Artifacts[0]
		if artifact.FileName != "onboarding-Claire-Moreau.txt" {
			t.Fatalf("unexpected artifact name: %q", artifact.FileName)
		}
		if !strings.Contains(artifact.Content, "=== MATRICE D'ONBOARDING ===") {
			t.Fatalf("expected matrix header, got %q", artifact.Content)
		}
		if !strings.Contains(artifact.Content, "☑ Tâche item-1") {
			t.Fatalf("expected included task marker, got %q", artifact.Content)
		}
		if !strings.Contains(artifact.Content, "☐ Tâche item-2") {
			t.Fatalf("expected excluded task marker, got %q", artifact.Content)
		}
		if !strings.Contains(artifact.Content, "(OBLIGATOIRE)") {
			t.Fatalf("expected mandatory marker, got %q", artifact.Content)
		}
	})

	t.Run("defaults to the full catalog when no tasks are picked", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)

		batch, err := svc.Preview(context.Background(), NotificationRequest{Mode: NotificationWeekly})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		content := batch.Artifacts[0].Content
		if strings.Contains(content, "☐") {
			t.Fatalf("expected every task to be included by default, got %q", content)
		}
	})

	t.Run("derives recipients from the static department directory", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)

		batch, err := svc.Preview(context.Background(), NotificationRequest{Mode: NotificationWeekly})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		expected := []string{"marie.dubois@mine.com", "jean.martin@mine.com", "pierre.lefebvre@mine.com"}
		if len(batch.Notification.Recipients) != len(expected) {
			t.Fatalf("expected all department recipients, got %v", batch.Notification.Recipients)
		}
		for index, address := range expected {
			if batch.Notification.Recipients[index] != address {
				t.Fatalf("expected recipient %q at %d, got %v", address, index, batch.Notification.Recipients)
			}
		}

		restricted, err := svc.Preview(context.Background(), NotificationRequest{
			Mode:        NotificationWeekly,
			Departments: []onboarding.Department{onboarding.DepartmentIT},
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(restricted.Notification.Recipients) != 1 || restricted.Notification.Recipients[0] != "jean.martin@mine.com" {
			t.Fatalf("expected only the IT recipient, got %v", restricted.Notification.Recipients)
		}
	})

	t.Run("does not touch the notification log", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)

		if _, err := svc.Preview(context.Background(), NotificationRequest{Mode: NotificationWeekly}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		logged, err := store.ListNotifications(context.Background())
		if err != nil {
			t.Fatalf("expected list to succeed, got %v", err)
		}
		if len(logged) != 0 {
			t.Fatalf("expected preview to leave the log empty, got %d", len(logged))
		}
	})
}

func TestNotificationService_Dispatch(t *testing.T) {
	t.Run("appends exactly one record per send", func(t *testing.T) {
		store, svc := newNotificationFixture(t)
		seedArrival(t, store, "employee-1", "Claire", time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)
		seedArrival(t, store, "employee-2", "Paul", time.Date(2024, time.January, 19, 0, 0, 0, 0, time.UTC), onboarding.EmployeePreparation)

		batch, err := svc.Dispatch(context.Background(), NotificationRequest{Mode: NotificationWeekly})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if len(batch.Artifacts) != 2 {
			t.Fatalf("expected two artifacts, got %d", len(batch.Artifacts))
		}

		logged, err := svc.ListNotifications(context.Background())
		if err != nil {
			t.Fatalf("expected list to succeed, got %v", err)
		}
		if len(logged) != 1 {
			t.Fatalf("expected a single log record, got %d", len(logged))
		}
		if logged[0].Status != "sent" {
			t.Fatalf("expected sent status, got %q", logged[0].Status)
		}
		if !logged[0].SentAt.Equal(testClock) {
			t.Fatalf("expected timestamp from injected clock, got %v", logged[0].SentAt)
		}
	})
}
