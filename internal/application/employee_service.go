package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
)

// ChecklistProvisioner creates the per-employee checklist instances derived
// from the catalog. EmployeeService calls it right after intake so a new
// employee never exists without a checklist.
type ChecklistProvisioner interface {
	EnsureInstances(ctx context.Context, employeeID string) ([]ChecklistInstance, error)
}

// EmployeeService manages employee intake records and their progress through
// the onboarding pipeline.
type EmployeeService struct {
	employees   persistence.EmployeeRepository
	checklists  ChecklistProvisioner
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEmployeeService constructs an employee service with the provided dependencies.
func NewEmployeeService(employees persistence.EmployeeRepository, checklists ChecklistProvisioner, idGenerator func() string, now func() time.Time) *EmployeeService {
	return NewEmployeeServiceWithLogger(employees, checklists, idGenerator, now, nil)
}

// NewEmployeeServiceWithLogger constructs an employee service with a specified logger.
func NewEmployeeServiceWithLogger(employees persistence.EmployeeRepository, checklists ChecklistProvisioner, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EmployeeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EmployeeService{
		employees:   employees,
		checklists:  checklists,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *EmployeeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EmployeeService", operation, attrs...)
}

// CreateEmployee validates intake input, persists the record in the
// Préparation status and provisions the checklist instances.
func (s *EmployeeService) CreateEmployee(ctx context.Context, input EmployeeInput) (employee Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		err = fmt.Errorf("employee repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateEmployee",
		"department", input.Department,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("employee_id", employee.ID).InfoContext(ctx, "employee created")
	}()

	vErr := validateEmployeeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	record := employeeRecordFromInput(persistence.Employee{
		ID:        s.idGenerator(),
		Status:    string(onboarding.EmployeePreparation),
		CreatedAt: s.now(),
	}, input)

	var persisted persistence.Employee
	persisted, err = s.employees.CreateEmployee(ctx, record)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	if s.checklists != nil {
		if _, err = s.checklists.EnsureInstances(ctx, persisted.ID); err != nil {
			return
		}
	}

	employee = toEmployee(persisted)
	return
}

// UpdateEmployee replaces the intake fields of an existing record. Status and
// completion timestamps are managed through UpdateStatus and the checklist
// services, never here.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, employeeID string, input EmployeeInput) (employee Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		err = fmt.Errorf("employee repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEmployee",
		"employee_id", employeeID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "employee updated")
	}()

	vErr := validateEmployeeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing persistence.Employee
	existing, err = s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := employeeRecordFromInput(existing, input)

	var persisted persistence.Employee
	persisted, err = s.employees.UpdateEmployee(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	employee = toEmployee(persisted)
	return
}

// UpdateStatus moves the employee to the given onboarding status. Entering
// Complété stamps CompletedAt; leaving it clears the stamp, so the timestamp
// is set exactly when the status says so.
func (s *EmployeeService) UpdateStatus(ctx context.Context, employeeID string, status onboarding.EmployeeStatus) (employee Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		err = fmt.Errorf("employee repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateStatus",
		"employee_id", employeeID,
		"status", string(status),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update employee status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "employee status updated")
	}()

	if !status.Valid() {
		vErr := &ValidationError{}
		vErr.add("status", "status must be a known onboarding status")
		err = vErr
		return
	}

	var existing persistence.Employee
	existing, err = s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	existing.Status = string(status)
	if status == onboarding.EmployeeCompleted {
		if existing.CompletedAt == nil {
			now := s.now()
			existing.CompletedAt = &now
		}
	} else {
		existing.CompletedAt = nil
	}

	var persisted persistence.Employee
	persisted, err = s.employees.UpdateEmployee(ctx, existing)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	employee = toEmployee(persisted)
	return
}

// GetEmployee returns one intake record.
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	if s == nil {
		return Employee{}, fmt.Errorf("EmployeeService is nil")
	}
	if s.employees == nil {
		return Employee{}, ErrNotFound
	}

	record, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return Employee{}, mapRepoError(err)
	}
	return toEmployee(record), nil
}

// ListEmployees returns every intake record in creation order.
func (s *EmployeeService) ListEmployees(ctx context.Context) (employees []Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListEmployees")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list employees", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(employees)).InfoContext(ctx, "employees listed")
	}()

	var raw []persistence.Employee
	raw, err = s.employees.ListEmployees(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	employees = make([]Employee, 0, len(raw))
	for _, record := range raw {
		employees = append(employees, toEmployee(record))
	}
	return
}

// DeleteEmployee removes an intake record.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID string) error {
	if s == nil {
		return fmt.Errorf("EmployeeService is nil")
	}
	if s.employees == nil {
		return fmt.Errorf("employee repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteEmployee",
		"employee_id", employeeID,
	)

	if err := s.employees.DeleteEmployee(ctx, employeeID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete employee", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "employee deleted")
	return nil
}

// UpcomingArrivals returns employees still in Préparation whose arrival date
// is today or later, soonest first.
func (s *EmployeeService) UpcomingArrivals(ctx context.Context) (employees []Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "UpcomingArrivals")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list upcoming arrivals", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(employees)).InfoContext(ctx, "upcoming arrivals listed")
	}()

	var raw []persistence.Employee
	raw, err = s.employees.ListEmployees(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	today := onboarding.StartOfDay(s.now())
	employees = make([]Employee, 0)
	for _, record := range raw {
		if record.Status != string(onboarding.EmployeePreparation) {
			continue
		}
		if onboarding.StartOfDay(record.ArrivalDate).Before(today) {
			continue
		}
		employees = append(employees, toEmployee(record))
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].ArrivalDate.Equal(employees[j].ArrivalDate) {
			return employees[i].ID < employees[j].ID
		}
		return employees[i].ArrivalDate.Before(employees[j].ArrivalDate)
	})
	return
}

// KPI aggregates the dashboard counters over every intake record.
func (s *EmployeeService) KPI(ctx context.Context) (report KPIReport, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		return KPIReport{}, nil
	}

	logger := s.loggerWith(ctx, "KPI")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute KPI report", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "KPI report computed")
	}()

	var raw []persistence.Employee
	raw, err = s.employees.ListEmployees(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	overdueBefore := onboarding.StartOfDay(now).AddDate(0, 0, -6)

	totalDuration := 0.0
	for _, record := range raw {
		if record.CreatedAt.After(weekAgo) {
			report.IntegrationsThisWeek++
		}
		if record.Status == string(onboarding.EmployeeCompleted) {
			report.IntegrationsCompleted++
			if record.CompletedAt != nil {
				totalDuration += record.CompletedAt.Sub(record.ArrivalDate).Hours() / 24
			}
		} else if onboarding.StartOfDay(record.ArrivalDate).Before(overdueBefore) {
			report.IntegrationsOverdue++
		}
	}
	if report.IntegrationsCompleted > 0 {
		report.AverageDurationDays = int(math.Round(totalDuration / float64(report.IntegrationsCompleted)))
	}
	return
}

func employeeRecordFromInput(base persistence.Employee, input EmployeeInput) persistence.Employee {
	base.FirstName = strings.TrimSpace(input.FirstName)
	base.LastName = strings.TrimSpace(input.LastName)
	base.Position = strings.TrimSpace(input.Position)
	base.Department = strings.TrimSpace(input.Department)
	base.Site = strings.TrimSpace(input.Site)
	base.ArrivalDate = input.ArrivalDate
	base.ContractStartDate = input.ContractStartDate
	base.ContractEndDate = cloneTime(input.ContractEndDate)
	base.ContractType = string(input.ContractType)
	base.RequiredPPE = strings.TrimSpace(input.RequiredPPE)
	base.PlannedTraining = strings.TrimSpace(input.PlannedTraining)
	base.HRResponsible = strings.TrimSpace(input.HRResponsible)
	base.ITResponsible = strings.TrimSpace(input.ITResponsible)
	base.SecurityResponsible = strings.TrimSpace(input.SecurityResponsible)
	base.HRTasks = append([]string(nil), input.HRTasks...)
	base.ITTasks = append([]string(nil), input.ITTasks...)
	base.SecurityTasks = append([]string(nil), input.SecurityTasks...)
	base.AdditionalComments = strings.TrimSpace(input.AdditionalComments)
	return base
}

func validateEmployeeInput(input EmployeeInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.FirstName) == "" {
		vErr.add("firstName", "first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		vErr.add("lastName", "last name is required")
	}
	if strings.TrimSpace(input.Position) == "" {
		vErr.add("position", "position is required")
	}
	if strings.TrimSpace(input.Department) == "" {
		vErr.add("department", "department is required")
	}
	if input.ArrivalDate.IsZero() {
		vErr.add("arrivalDate", "arrival date is required")
	}
	if input.ContractStartDate.IsZero() {
		vErr.add("contractStartDate", "contract start date is required")
	}
	if !input.ContractType.Valid() {
		vErr.add("contractType", "contract type must be a known value")
	}
	if input.ContractType == onboarding.ContractCDD && input.ContractEndDate == nil {
		vErr.add("contractEndDate", "contract end date is required for fixed-term contracts")
	}

	return vErr
}
