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

// DefaultCompletedBy is recorded on a completed task when the caller does not
// name a person.
const DefaultCompletedBy = "Système"

// ChecklistService manages per-employee checklist instances and keeps the
// owning employee's onboarding status in step with them.
type ChecklistService struct {
	items       persistence.ChecklistItemRepository
	instances   persistence.EmployeeChecklistRepository
	employees   persistence.EmployeeRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewChecklistService constructs a checklist service with the provided dependencies.
func NewChecklistService(items persistence.ChecklistItemRepository, instances persistence.EmployeeChecklistRepository, employees persistence.EmployeeRepository, idGenerator func() string, now func() time.Time) *ChecklistService {
	return NewChecklistServiceWithLogger(items, instances, employees, idGenerator, now, nil)
}

// NewChecklistServiceWithLogger constructs a checklist service with a specified logger.
func NewChecklistServiceWithLogger(items persistence.ChecklistItemRepository, instances persistence.EmployeeChecklistRepository, employees persistence.EmployeeRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ChecklistService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ChecklistService{
		items:       items,
		instances:   instances,
		employees:   employees,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *ChecklistService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ChecklistService", operation, attrs...)
}

// EnsureInstances creates a checklist instance for every catalog task the
// employee does not have one for yet. Calling it again is a no-op for tasks
// already instantiated, so existing progress is never reset.
func (s *ChecklistService) EnsureInstances(ctx context.Context, employeeID string) (instances []ChecklistInstance, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}
	if s.items == nil || s.instances == nil || s.employees == nil {
		err = fmt.Errorf("checklist repositories not configured")
		return
	}

	created := 0
	logger := s.loggerWith(ctx, "EnsureInstances",
		"employee_id", employeeID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to ensure checklist instances", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("created_count", created, "result_count", len(instances)).InfoContext(ctx, "checklist instances ensured")
	}()

	if _, err = s.employees.GetEmployee(ctx, employeeID); err != nil {
		err = mapRepoError(err)
		return
	}

	var catalog []persistence.ChecklistItem
	catalog, err = s.items.ListChecklistItems(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	var existing []persistence.EmployeeChecklistItem
	existing, err = s.instances.ListInstancesForEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	have := make(map[string]struct{}, len(existing))
	for _, instance := range existing {
		have[instance.ChecklistItemID] = struct{}{}
	}

	for _, item := range catalog {
		if _, ok := have[item.ID]; ok {
			continue
		}
		record := persistence.EmployeeChecklistItem{
			ID:              s.idGenerator(),
			EmployeeID:      employeeID,
			ChecklistItemID: item.ID,
			Status:          string(onboarding.TaskNotStarted),
			CreatedAt:       s.now(),
		}
		record.UpdatedAt = record.CreatedAt
		if _, createErr := s.instances.CreateInstance(ctx, record); createErr != nil {
			err = mapRepoError(createErr)
			return
		}
		created++
	}

	var refreshed []persistence.EmployeeChecklistItem
	refreshed, err = s.instances.ListInstancesForEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	instances = make([]ChecklistInstance, 0, len(refreshed))
	for _, record := range refreshed {
		instances = append(instances, toChecklistInstance(record))
	}
	return
}

// ListInstances returns the employee's checklist instances.
func (s *ChecklistService) ListInstances(ctx context.Context, employeeID string) (instances []ChecklistInstance, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}
	if s.instances == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListInstances",
		"employee_id", employeeID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list checklist instances", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(instances)).InfoContext(ctx, "checklist instances listed")
	}()

	var raw []persistence.EmployeeChecklistItem
	raw, err = s.instances.ListInstancesForEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	instances = make([]ChecklistInstance, 0, len(raw))
	for _, record := range raw {
		instances = append(instances, toChecklistInstance(record))
	}
	return
}

// SetTaskStatus updates one checklist instance and re-evaluates whether the
// employee's mandatory tasks are now all complete.
//
// A nil Notes pointer leaves the stored notes untouched; a pointer to the
// empty string clears them.
func (s *ChecklistService) SetTaskStatus(ctx context.Context, params SetTaskStatusParams) (result SetTaskStatusResult, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}
	if s.items == nil || s.instances == nil || s.employees == nil {
		err = fmt.Errorf("checklist repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "SetTaskStatus",
		"employee_id", params.EmployeeID,
		"checklist_item_id", params.ChecklistItemID,
		"status", string(params.Status),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to set task status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("employee_completed", result.EmployeeCompleted).InfoContext(ctx, "task status set")
	}()

	if !params.Status.Valid() {
		vErr := &ValidationError{}
		vErr.add("status", "status must be a known task status")
		err = vErr
		return
	}

	var instance persistence.EmployeeChecklistItem
	instance, err = s.instances.GetInstance(ctx, params.EmployeeID, params.ChecklistItemID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	now := s.now()
	instance.Status = string(params.Status)
	// Prior completion stamps survive a revert so the checklist keeps the
	// record of who signed off last.
	if params.Status == onboarding.TaskCompleted {
		instance.CompletedDate = &now
		completedBy := strings.TrimSpace(params.CompletedBy)
		if completedBy == "" {
			completedBy = DefaultCompletedBy
		}
		instance.CompletedBy = completedBy
	}
	if params.Notes != nil {
		instance.Notes = strings.TrimSpace(*params.Notes)
	}
	instance.UpdatedAt = now

	var persisted persistence.EmployeeChecklistItem
	persisted, err = s.instances.UpdateInstance(ctx, instance)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	result.Instance = toChecklistInstance(persisted)

	result.EmployeeCompleted, err = s.evaluateCompletion(ctx, params.EmployeeID, now)
	if err != nil {
		return
	}
	return
}

// evaluateCompletion promotes the employee to the completed onboarding status
// once every mandatory catalog task has a completed instance. It never
// demotes: reverting a task leaves an already completed employee untouched.
func (s *ChecklistService) evaluateCompletion(ctx context.Context, employeeID string, now time.Time) (bool, error) {
	catalog, err := s.items.ListChecklistItems(ctx)
	if err != nil {
		return false, mapRepoError(err)
	}
	instances, err := s.instances.ListInstancesForEmployee(ctx, employeeID)
	if err != nil {
		return false, mapRepoError(err)
	}

	tasks := make([]onboarding.CatalogTask, 0, len(catalog))
	for _, item := range catalog {
		tasks = append(tasks, onboarding.CatalogTask{ID: item.ID, Mandatory: item.Mandatory})
	}
	progress := make([]onboarding.TaskProgress, 0, len(instances))
	for _, instance := range instances {
		progress = append(progress, onboarding.TaskProgress{
			ChecklistItemID: instance.ChecklistItemID,
			Status:          onboarding.TaskStatus(instance.Status),
		})
	}

	if !onboarding.MandatoryTasksComplete(tasks, progress) {
		return false, nil
	}

	employee, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return false, mapRepoError(err)
	}
	if employee.Status == string(onboarding.EmployeeCompleted) {
		return true, nil
	}

	employee.Status = string(onboarding.EmployeeCompleted)
	employee.CompletedAt = &now
	if _, err := s.employees.UpdateEmployee(ctx, employee); err != nil {
		return false, mapRepoError(err)
	}
	return true, nil
}

// DepartmentStats aggregates the employee's checklist progress per
// responsible department.
func (s *ChecklistService) DepartmentStats(ctx context.Context, employeeID string) (stats []DepartmentStats, err error) {
	if s == nil {
		err = fmt.Errorf("ChecklistService is nil")
		return
	}
	if s.items == nil || s.instances == nil {
		err = fmt.Errorf("checklist repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "DepartmentStats",
		"employee_id", employeeID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute department stats", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "department stats computed")
	}()

	var catalog []persistence.ChecklistItem
	catalog, err = s.items.ListChecklistItems(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	var instances []persistence.EmployeeChecklistItem
	instances, err = s.instances.ListInstancesForEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	catalogByID := make(map[string]persistence.ChecklistItem, len(catalog))
	for _, item := range catalog {
		catalogByID[item.ID] = item
	}

	totals := make(map[onboarding.Department]*DepartmentStats)
	for _, department := range onboarding.Departments() {
		totals[department] = &DepartmentStats{Department: department}
	}
	for _, instance := range instances {
		item, ok := catalogByID[instance.ChecklistItemID]
		if !ok {
			continue
		}
		entry := totals[onboarding.Department(item.Responsible)]
		if entry == nil {
			continue
		}
		entry.Total++
		if item.Mandatory {
			entry.Mandatory++
		}
		switch onboarding.TaskStatus(instance.Status) {
		case onboarding.TaskCompleted:
			entry.Completed++
		case onboarding.TaskInProgress:
			entry.InProgress++
		}
	}

	stats = make([]DepartmentStats, 0, len(totals))
	for _, department := range onboarding.Departments() {
		stats = append(stats, *totals[department])
	}
	return
}
