package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
)

// frenchDate is the date layout used in notification bodies and artifacts.
const frenchDate = "02/01/2006"

// departmentRecipients is the static address book used for notification
// recipients. It is intentionally not sourced from the editable Responsable
// directory so that sending a batch always reaches the same inboxes.
var departmentRecipients = map[onboarding.Department]string{
	onboarding.DepartmentRH:       "marie.dubois@mine.com",
	onboarding.DepartmentIT:       "jean.martin@mine.com",
	onboarding.DepartmentSecurity: "pierre.lefebvre@mine.com",
}

// NotificationService composes notification batches from the employee store
// and appends them to the immutable notification log. Delivery is simulated:
// the matrix artifacts are returned to the caller for download, nothing is
// transmitted.
type NotificationService struct {
	employees     persistence.EmployeeRepository
	items         persistence.ChecklistItemRepository
	notifications persistence.NotificationRepository
	idGenerator   func() string
	now           func() time.Time
	logger        *slog.Logger
}

// NewNotificationService constructs a notification service with the provided dependencies.
func NewNotificationService(employees persistence.EmployeeRepository, items persistence.ChecklistItemRepository, notifications persistence.NotificationRepository, idGenerator func() string, now func() time.Time) *NotificationService {
	return NewNotificationServiceWithLogger(employees, items, notifications, idGenerator, now, nil)
}

// NewNotificationServiceWithLogger constructs a notification service with a specified logger.
func NewNotificationServiceWithLogger(employees persistence.EmployeeRepository, items persistence.ChecklistItemRepository, notifications persistence.NotificationRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *NotificationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &NotificationService{
		employees:     employees,
		items:         items,
		notifications: notifications,
		idGenerator:   idGenerator,
		now:           now,
		logger:        defaultLogger(logger),
	}
}

func (s *NotificationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "NotificationService", operation, attrs...)
}

// Preview composes a batch without touching the notification log, so callers
// can inspect subject, message and artifacts before sending.
func (s *NotificationService) Preview(ctx context.Context, request NotificationRequest) (batch NotificationBatch, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Preview",
		"mode", string(request.Mode),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to preview notification", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("artifact_count", len(batch.Artifacts)).InfoContext(ctx, "notification previewed")
	}()

	batch, err = s.compose(ctx, request)
	return
}

// Dispatch composes a batch and appends exactly one record to the
// notification log, however many employees it covers.
func (s *NotificationService) Dispatch(ctx context.Context, request NotificationRequest) (batch NotificationBatch, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}
	if s.notifications == nil {
		err = fmt.Errorf("notification repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Dispatch",
		"mode", string(request.Mode),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to dispatch notification", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"notification_id", batch.Notification.ID,
			"recipient_count", len(batch.Notification.Recipients),
			"artifact_count", len(batch.Artifacts),
		).InfoContext(ctx, "notification dispatched")
	}()

	batch, err = s.compose(ctx, request)
	if err != nil {
		return
	}

	if err = s.notifications.AppendNotification(ctx, toPersistenceNotification(batch.Notification)); err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// ListNotifications returns the log, most recent first.
func (s *NotificationService) ListNotifications(ctx context.Context) (notifications []Notification, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}
	if s.notifications == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListNotifications")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list notifications", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(notifications)).InfoContext(ctx, "notifications listed")
	}()

	var raw []persistence.Notification
	raw, err = s.notifications.ListNotifications(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	notifications = make([]Notification, 0, len(raw))
	for _, record := range raw {
		notifications = append(notifications, toNotification(record))
	}
	return
}

func (s *NotificationService) compose(ctx context.Context, request NotificationRequest) (NotificationBatch, error) {
	if !request.Mode.Valid() {
		vErr := &ValidationError{}
		vErr.add("mode", "mode must be weekly, tomorrow or custom")
		return NotificationBatch{}, vErr
	}
	if s.employees == nil || s.items == nil {
		return NotificationBatch{}, fmt.Errorf("notification repositories not configured")
	}

	departments := request.Departments
	if len(departments) == 0 {
		departments = onboarding.Departments()
	}

	employees, err := s.selectEmployees(ctx, request.Mode)
	if err != nil {
		return NotificationBatch{}, err
	}

	catalog, err := s.items.ListChecklistItems(ctx)
	if err != nil {
		return NotificationBatch{}, mapRepoError(err)
	}
	catalogByDepartment := make(map[onboarding.Department][]persistence.ChecklistItem)
	for _, item := range catalog {
		department := onboarding.Department(item.Responsible)
		catalogByDepartment[department] = append(catalogByDepartment[department], item)
	}

	selections := s.resolveSelections(request.Selections, employees, departments, catalogByDepartment)

	subject := composeSubject(request.Mode, selections)
	message := composeMessage(request.Mode, request.CustomMessage, selections, departments)

	artifacts := make([]Artifact, 0, len(selections))
	for _, selection := range selections {
		artifacts = append(artifacts, Artifact{
			EmployeeID: selection.employee.ID,
			FileName:   fmt.Sprintf("onboarding-%s-%s.txt", selection.employee.FirstName, selection.employee.LastName),
			Content:    composeMatrix(selection, departments, catalogByDepartment),
		})
	}

	recipients := make([]string, 0, len(departments))
	for _, department := range onboarding.Departments() {
		if !containsDepartment(departments, department) {
			continue
		}
		recipients = append(recipients, departmentRecipients[department])
	}

	notificationType := "info"
	if request.Mode == NotificationTomorrow {
		notificationType = "warning"
	}

	notification := Notification{
		ID:         s.idGenerator(),
		Subject:    subject,
		Message:    message,
		Recipients: recipients,
		SentAt:     s.now(),
		Type:       notificationType,
		Status:     "sent",
	}

	return NotificationBatch{Notification: notification, Artifacts: artifacts}, nil
}

// resolvedSelection pairs a selected employee with the task ids to include in
// their matrix. Inclusion reflects what to notify about, not completion state.
type resolvedSelection struct {
	employee persistence.Employee
	tasks    map[onboarding.Department][]string
}

func (s *NotificationService) selectEmployees(ctx context.Context, mode NotificationMode) ([]persistence.Employee, error) {
	all, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	now := s.now()
	selected := make([]persistence.Employee, 0, len(all))
	for _, employee := range all {
		switch mode {
		case NotificationWeekly:
			if onboarding.ArrivesThisWeek(employee.ArrivalDate, now) {
				selected = append(selected, employee)
			}
		case NotificationTomorrow:
			if onboarding.ArrivesTomorrow(employee.ArrivalDate, now) {
				selected = append(selected, employee)
			}
		case NotificationCustom:
			if employee.Status != string(onboarding.EmployeeCompleted) {
				selected = append(selected, employee)
			}
		}
	}
	return selected, nil
}

func (s *NotificationService) resolveSelections(requested []EmployeeSelection, employees []persistence.Employee, departments []onboarding.Department, catalogByDepartment map[onboarding.Department][]persistence.ChecklistItem) []resolvedSelection {
	tasksByEmployee := make(map[string]map[onboarding.Department][]string, len(requested))
	for _, selection := range requested {
		tasksByEmployee[selection.EmployeeID] = selection.Tasks
	}

	selections := make([]resolvedSelection, 0, len(employees))
	for _, employee := range employees {
		tasks, restricted := tasksByEmployee[employee.ID]
		if len(requested) > 0 && !restricted {
			continue
		}
		if tasks == nil {
			tasks = make(map[onboarding.Department][]string, len(departments))
			for _, department := range departments {
				ids := make([]string, 0, len(catalogByDepartment[department]))
				for _, item := range catalogByDepartment[department] {
					ids = append(ids, item.ID)
				}
				tasks[department] = ids
			}
		}
		selections = append(selections, resolvedSelection{employee: employee, tasks: tasks})
	}
	return selections
}

func composeSubject(mode NotificationMode, selections []resolvedSelection) string {
	switch mode {
	case NotificationWeekly:
		return fmt.Sprintf("Arrivées de la semaine - %d employé(s)", len(selections))
	case NotificationTomorrow:
		names := make([]string, 0, len(selections))
		for _, selection := range selections {
			names = append(names, selection.employee.FirstName+" "+selection.employee.LastName)
		}
		return "Arrivée demain - " + strings.Join(names, ", ")
	case NotificationCustom:
		return fmt.Sprintf("Notification personnalisée - %d employé(s)", len(selections))
	}
	return "Notification onboarding"
}

func composeMessage(mode NotificationMode, customMessage string, selections []resolvedSelection, departments []onboarding.Department) string {
	var b strings.Builder
	b.WriteString(customMessage)

	switch mode {
	case NotificationWeekly:
		b.WriteString("\n\nEmployés arrivant cette semaine:\n")
	case NotificationTomorrow:
		b.WriteString("\n\nEmployés arrivant demain:\n")
	case NotificationCustom:
		b.WriteString("\n\nEmployés concernés:\n")
	}

	for _, selection := range selections {
		fmt.Fprintf(&b, "\n• %s %s - %s", selection.employee.FirstName, selection.employee.LastName, selection.employee.Position)
		fmt.Fprintf(&b, "\n  Arrivée: %s", selection.employee.ArrivalDate.Format(frenchDate))
		for _, department := range departments {
			if count := len(selection.tasks[department]); count > 0 {
				fmt.Fprintf(&b, "\n  %s: %d tâche(s) assignée(s)", department, count)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\nLes matrices détaillées sont jointes pour chaque employé.")
	return b.String()
}

func composeMatrix(selection resolvedSelection, departments []onboarding.Department, catalogByDepartment map[onboarding.Department][]persistence.ChecklistItem) string {
	var b strings.Builder
	b.WriteString("\n=== MATRICE D'ONBOARDING ===\n")
	fmt.Fprintf(&b, "Employé: %s %s\n", selection.employee.FirstName, selection.employee.LastName)
	fmt.Fprintf(&b, "Poste: %s\n", selection.employee.Position)
	fmt.Fprintf(&b, "Département: %s\n", selection.employee.Department)
	fmt.Fprintf(&b, "Date d'arrivée: %s\n", selection.employee.ArrivalDate.Format(frenchDate))
	b.WriteString("\n=== TÂCHES PAR DÉPARTEMENT ===\n")

	for _, department := range onboarding.Departments() {
		if !containsDepartment(departments, department) {
			continue
		}
		fmt.Fprintf(&b, "\n--- %s ---\n", department)
		included := make(map[string]struct{}, len(selection.tasks[department]))
		for _, id := range selection.tasks[department] {
			included[id] = struct{}{}
		}
		for _, item := range catalogByDepartment[department] {
			marker := "☐"
			if _, ok := included[item.ID]; ok {
				marker = "☑"
			}
			fmt.Fprintf(&b, "%s %s\n", marker, item.Title)
			fmt.Fprintf(&b, "   %s\n", item.Description)
			mandatory := ""
			if item.Mandatory {
				mandatory = " (OBLIGATOIRE)"
			}
			fmt.Fprintf(&b, "   Durée: %gh%s\n\n", item.EstimatedDuration, mandatory)
		}
	}
	return b.String()
}

func containsDepartment(departments []onboarding.Department, department onboarding.Department) bool {
	for _, candidate := range departments {
		if candidate == department {
			return true
		}
	}
	return false
}
