package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
)

// Planning is one generated schedule. It is a read-only derivation: nothing
// is persisted, and regenerating with the same filters and a fresh random
// source may shuffle the synthetic statuses.
type Planning struct {
	Week      string
	WeekStart time.Time
	Tasks     []onboarding.PlanningTask
	Days      []onboarding.PlanningDay
	Stats     onboarding.PlanningStats
}

// Export is a downloadable file produced by a service.
type Export struct {
	FileName    string
	ContentType string
	Content     string
}

// PlanningService derives synthetic onboarding schedules from the employee
// store and the catalog.
type PlanningService struct {
	employees persistence.EmployeeRepository
	items     persistence.ChecklistItemRepository
	random    func() float64
	now       func() time.Time
	logger    *slog.Logger
}

// NewPlanningService constructs a planning service with the provided dependencies.
func NewPlanningService(employees persistence.EmployeeRepository, items persistence.ChecklistItemRepository, random func() float64, now func() time.Time) *PlanningService {
	return NewPlanningServiceWithLogger(employees, items, random, now, nil)
}

// NewPlanningServiceWithLogger constructs a planning service with a specified logger.
func NewPlanningServiceWithLogger(employees persistence.EmployeeRepository, items persistence.ChecklistItemRepository, random func() float64, now func() time.Time, logger *slog.Logger) *PlanningService {
	if now == nil {
		now = time.Now
	}
	return &PlanningService{
		employees: employees,
		items:     items,
		random:    random,
		now:       now,
		logger:    defaultLogger(logger),
	}
}

func (s *PlanningService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PlanningService", operation, attrs...)
}

// Generate derives the schedule for the requested week, optionally narrowed
// to one department. An empty week selects the current one.
func (s *PlanningService) Generate(ctx context.Context, params PlanningParams) (planning Planning, err error) {
	if s == nil {
		err = fmt.Errorf("PlanningService is nil")
		return
	}
	if s.employees == nil || s.items == nil {
		err = fmt.Errorf("planning repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "Generate",
		"week", params.Week,
		"department", string(params.Department),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to generate planning", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("task_count", len(planning.Tasks)).InfoContext(ctx, "planning generated")
	}()

	if params.Department != "" && !params.Department.Valid() {
		vErr := &ValidationError{}
		vErr.add("department", "department must be a known value")
		err = vErr
		return
	}

	now := s.now()
	weekStart := onboarding.StartOfWeek(now)
	if params.Week != "" {
		weekStart, err = onboarding.ParseWeek(params.Week, now.Location())
		if err != nil {
			vErr := &ValidationError{}
			vErr.add("week", "week must use the 2006-W02 form")
			err = vErr
			return
		}
	}

	var employees []persistence.Employee
	employees, err = s.employees.ListEmployees(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	var catalog []persistence.ChecklistItem
	catalog, err = s.items.ListChecklistItems(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	planningEmployees := make([]onboarding.PlanningEmployee, 0, len(employees))
	for _, employee := range employees {
		planningEmployees = append(planningEmployees, onboarding.PlanningEmployee{
			ID:     employee.ID,
			Name:   employee.FirstName + " " + employee.LastName,
			Status: onboarding.EmployeeStatus(employee.Status),
		})
	}
	entries := make([]onboarding.PlanningEntry, 0, len(catalog))
	for _, item := range catalog {
		entries = append(entries, onboarding.PlanningEntry{
			ID:                item.ID,
			Title:             item.Title,
			Responsible:       onboarding.Department(item.Responsible),
			Mandatory:         item.Mandatory,
			EstimatedDuration: item.EstimatedDuration,
		})
	}

	tasks := onboarding.GeneratePlanning(planningEmployees, entries, weekStart, params.Department, s.random)

	planning = Planning{
		Week:      onboarding.FormatWeek(weekStart),
		WeekStart: weekStart,
		Tasks:     tasks,
		Days:      onboarding.GroupPlanningByDay(tasks),
		Stats:     onboarding.SummarisePlanning(tasks),
	}
	return
}

// ExportCSV renders the generated schedule as a downloadable CSV. Rows are
// comma-joined without quoting, matching the dashboard's historical export.
func (s *PlanningService) ExportCSV(ctx context.Context, params PlanningParams) (export Export, err error) {
	if s == nil {
		err = fmt.Errorf("PlanningService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ExportCSV",
		"week", params.Week,
		"department", string(params.Department),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to export planning", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("file_name", export.FileName).InfoContext(ctx, "planning exported")
	}()

	var planning Planning
	planning, err = s.Generate(ctx, params)
	if err != nil {
		return
	}

	rows := make([]string, 0, len(planning.Tasks)+1)
	rows = append(rows, strings.Join([]string{"Date", "Employé", "Tâche", "Responsable", "Durée (h)", "Statut", "Priorité"}, ","))
	for _, task := range planning.Tasks {
		rows = append(rows, strings.Join([]string{
			task.Start.Format(frenchDate),
			task.EmployeeName,
			task.TaskTitle,
			string(task.Responsible),
			strconv.FormatFloat(task.EstimatedDuration, 'f', -1, 64),
			string(task.Status),
			task.Priority,
		}, ","))
	}

	export = Export{
		FileName:    fmt.Sprintf("planning-onboarding-%s.csv", planning.Week),
		ContentType: "text/csv",
		Content:     strings.Join(rows, "\n"),
	}
	return
}
