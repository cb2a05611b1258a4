package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// EquipmentService manages the IT equipment register attached to employees.
type EquipmentService struct {
	equipment   persistence.EquipmentRepository
	employees   persistence.EmployeeRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEquipmentService constructs an equipment service with the provided dependencies.
func NewEquipmentService(equipment persistence.EquipmentRepository, employees persistence.EmployeeRepository, idGenerator func() string, now func() time.Time) *EquipmentService {
	return NewEquipmentServiceWithLogger(equipment, employees, idGenerator, now, nil)
}

// NewEquipmentServiceWithLogger constructs an equipment service with a specified logger.
func NewEquipmentServiceWithLogger(equipment persistence.EquipmentRepository, employees persistence.EmployeeRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EquipmentService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EquipmentService{
		equipment:   equipment,
		employees:   employees,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *EquipmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EquipmentService", operation, attrs...)
}

// CreateEquipment validates input and persists a new register entry. The
// employee display name is resolved at assignment time and stored with the
// entry, so later renames never rewrite the register.
func (s *EquipmentService) CreateEquipment(ctx context.Context, input EquipmentInput) (equipment Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}
	if s.equipment == nil || s.employees == nil {
		err = fmt.Errorf("equipment repositories not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateEquipment",
		"employee_id", input.EmployeeID,
		"equipment_type", input.EquipmentType,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("equipment_id", equipment.ID).InfoContext(ctx, "equipment created")
	}()

	vErr := validateEquipmentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var owner persistence.Employee
	owner, err = s.employees.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	record := equipmentRecordFromInput(persistence.Equipment{
		ID:        s.idGenerator(),
		CreatedAt: s.now(),
	}, input)
	record.EmployeeName = owner.FirstName + " " + owner.LastName
	record.UpdatedAt = record.CreatedAt

	var persisted persistence.Equipment
	persisted, err = s.equipment.CreateEquipment(ctx, record)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	equipment = toEquipment(persisted)
	return
}

// UpdateEquipment validates input and updates an existing register entry.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, equipmentID string, input EquipmentInput) (equipment Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}
	if s.equipment == nil {
		err = fmt.Errorf("equipment repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEquipment",
		"equipment_id", equipmentID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "equipment updated")
	}()

	vErr := validateEquipmentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing persistence.Equipment
	existing, err = s.equipment.GetEquipment(ctx, equipmentID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := equipmentRecordFromInput(existing, input)
	if updated.EmployeeID != existing.EmployeeID && s.employees != nil {
		var owner persistence.Employee
		owner, err = s.employees.GetEmployee(ctx, updated.EmployeeID)
		if err != nil {
			err = mapRepoError(err)
			return
		}
		updated.EmployeeName = owner.FirstName + " " + owner.LastName
	}
	updated.UpdatedAt = s.now()

	var persisted persistence.Equipment
	persisted, err = s.equipment.UpdateEquipment(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	equipment = toEquipment(persisted)
	return
}

// DeleteEquipment removes a register entry.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, equipmentID string) error {
	if s == nil {
		return fmt.Errorf("EquipmentService is nil")
	}
	if s.equipment == nil {
		return fmt.Errorf("equipment repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteEquipment",
		"equipment_id", equipmentID,
	)

	if err := s.equipment.DeleteEquipment(ctx, equipmentID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete equipment", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "equipment deleted")
	return nil
}

// ListEquipment returns the register, most recently assigned first.
func (s *EquipmentService) ListEquipment(ctx context.Context) (equipment []Equipment, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}
	if s.equipment == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListEquipment")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(equipment)).InfoContext(ctx, "equipment listed")
	}()

	var raw []persistence.Equipment
	raw, err = s.equipment.ListEquipment(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	equipment = make([]Equipment, 0, len(raw))
	for _, record := range raw {
		equipment = append(equipment, toEquipment(record))
	}
	return
}

// ExportCSV renders the register as a downloadable CSV. Rows are comma-joined
// without quoting, matching the dashboard's historical export.
func (s *EquipmentService) ExportCSV(ctx context.Context) (export Export, err error) {
	if s == nil {
		err = fmt.Errorf("EquipmentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ExportCSV")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to export equipment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("file_name", export.FileName).InfoContext(ctx, "equipment exported")
	}()

	var equipment []Equipment
	equipment, err = s.ListEquipment(ctx)
	if err != nil {
		return
	}

	rows := make([]string, 0, len(equipment)+1)
	rows = append(rows, strings.Join([]string{"Employé", "Type", "Marque", "Modèle", "N° Série", "État", "Statut", "Date Attribution", "Fin Garantie", "Attribué par"}, ","))
	for _, item := range equipment {
		warranty := "N/A"
		if item.WarrantyEndDate != nil {
			warranty = item.WarrantyEndDate.Format(frenchDate)
		}
		rows = append(rows, strings.Join([]string{
			item.EmployeeName,
			item.EquipmentType,
			item.Brand,
			item.Model,
			item.SerialNumber,
			item.Condition,
			item.Status,
			item.AssignedDate.Format(frenchDate),
			warranty,
			item.AssignedBy,
		}, ","))
	}

	export = Export{
		FileName:    fmt.Sprintf("equipements-it-%s.csv", s.now().Format("2006-01-02")),
		ContentType: "text/csv",
		Content:     strings.Join(rows, "\n"),
	}
	return
}

func equipmentRecordFromInput(base persistence.Equipment, input EquipmentInput) persistence.Equipment {
	base.EmployeeID = strings.TrimSpace(input.EmployeeID)
	base.EquipmentType = strings.TrimSpace(input.EquipmentType)
	base.Brand = strings.TrimSpace(input.Brand)
	base.Model = strings.TrimSpace(input.Model)
	base.Specifications = strings.TrimSpace(input.Specifications)
	base.ScreenSize = strings.TrimSpace(input.ScreenSize)
	base.SerialNumber = strings.TrimSpace(input.SerialNumber)
	base.Condition = strings.TrimSpace(input.Condition)
	base.AssignedDate = input.AssignedDate
	base.ReturnDate = cloneTime(input.ReturnDate)
	base.Status = strings.TrimSpace(input.Status)
	base.WarrantyEndDate = cloneTime(input.WarrantyEndDate)
	base.Notes = strings.TrimSpace(input.Notes)
	base.AssignedBy = strings.TrimSpace(input.AssignedBy)
	return base
}

func validateEquipmentInput(input EquipmentInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.EmployeeID) == "" {
		vErr.add("employeeId", "employee is required")
	}
	if strings.TrimSpace(input.EquipmentType) == "" {
		vErr.add("equipmentType", "equipment type is required")
	}
	if strings.TrimSpace(input.SerialNumber) == "" {
		vErr.add("serialNumber", "serial number is required")
	}
	if input.AssignedDate.IsZero() {
		vErr.add("assignedDate", "assigned date is required")
	}

	return vErr
}
