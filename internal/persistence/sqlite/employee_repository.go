package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// EmployeeRepository implements persistence.EmployeeRepository using SQLite.
// The per-department task selections are stored as JSON arrays.
type EmployeeRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEmployeeRepository creates a new SQLite employee repository.
func NewEmployeeRepository(pool *ConnectionPool) *EmployeeRepository {
	return &EmployeeRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const employeeColumns = `id, first_name, last_name, position, department, site,
	arrival_date, contract_start_date, contract_end_date, contract_type,
	required_ppe, planned_training, hr_responsible, it_responsible,
	security_responsible, hr_tasks, it_tasks, security_tasks,
	additional_comments, status, created_at, completed_at`

// CreateEmployee inserts a new employee intake record.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee persistence.Employee) (persistence.Employee, error) {
	args, err := employeeArgs(employee)
	if err != nil {
		return persistence.Employee{}, err
	}

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.helper.Exec(ctx, query, args...); err != nil {
		return persistence.Employee{}, r.mapper.MapError(err)
	}

	return employee, nil
}

// UpdateEmployee updates an existing employee record.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, employee persistence.Employee) (persistence.Employee, error) {
	args, err := employeeArgs(employee)
	if err != nil {
		return persistence.Employee{}, err
	}

	query := `
		UPDATE employees
		SET first_name = ?, last_name = ?, position = ?, department = ?, site = ?,
			arrival_date = ?, contract_start_date = ?, contract_end_date = ?,
			contract_type = ?, required_ppe = ?, planned_training = ?,
			hr_responsible = ?, it_responsible = ?, security_responsible = ?,
			hr_tasks = ?, it_tasks = ?, security_tasks = ?,
			additional_comments = ?, status = ?, created_at = ?, completed_at = ?
		WHERE id = ?
	`

	// employeeArgs puts the ID first for INSERT; rotate it to the end for
	// the WHERE clause.
	updateArgs := append(args[1:], args[0])

	result, err := r.helper.Exec(ctx, query, updateArgs...)
	if err != nil {
		return persistence.Employee{}, r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.Employee{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.Employee{}, persistence.ErrNotFound
	}

	return r.GetEmployee(ctx, employee.ID)
}

// GetEmployee retrieves an employee by ID.
func (r *EmployeeRepository) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`

	row := r.helper.QueryRow(ctx, query, id)
	employee, err := scanEmployee(row)
	if err != nil {
		return persistence.Employee{}, r.mapper.MapError(err)
	}

	return employee, nil
}

// ListEmployees returns all employees ordered by creation time.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]persistence.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at ASC, id ASC`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var employees []persistence.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return employees, nil
}

// DeleteEmployee removes an employee. Checklist instances cascade via the
// foreign key.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

func employeeArgs(employee persistence.Employee) ([]interface{}, error) {
	hrTasks, err := encodeStrings(employee.HRTasks)
	if err != nil {
		return nil, err
	}
	itTasks, err := encodeStrings(employee.ITTasks)
	if err != nil {
		return nil, err
	}
	securityTasks, err := encodeStrings(employee.SecurityTasks)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Position,
		employee.Department,
		employee.Site,
		encodeTime(employee.ArrivalDate),
		encodeTime(employee.ContractStartDate),
		encodeNullableTime(employee.ContractEndDate),
		employee.ContractType,
		employee.RequiredPPE,
		employee.PlannedTraining,
		employee.HRResponsible,
		employee.ITResponsible,
		employee.SecurityResponsible,
		hrTasks,
		itTasks,
		securityTasks,
		employee.AdditionalComments,
		employee.Status,
		encodeTime(employee.CreatedAt),
		encodeNullableTime(employee.CompletedAt),
	}, nil
}

func scanEmployee(row rowScanner) (persistence.Employee, error) {
	var employee persistence.Employee
	var arrivalDate, contractStartDate, createdAt string
	var contractEndDate, completedAt sql.NullString
	var hrTasks, itTasks, securityTasks string

	err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Position,
		&employee.Department,
		&employee.Site,
		&arrivalDate,
		&contractStartDate,
		&contractEndDate,
		&employee.ContractType,
		&employee.RequiredPPE,
		&employee.PlannedTraining,
		&employee.HRResponsible,
		&employee.ITResponsible,
		&employee.SecurityResponsible,
		&hrTasks,
		&itTasks,
		&securityTasks,
		&employee.AdditionalComments,
		&employee.Status,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return persistence.Employee{}, err
	}

	if employee.ArrivalDate, err = parseTime("arrival_date", arrivalDate); err != nil {
		return persistence.Employee{}, err
	}
	if employee.ContractStartDate, err = parseTime("contract_start_date", contractStartDate); err != nil {
		return persistence.Employee{}, err
	}
	if employee.ContractEndDate, err = parseNullableTime("contract_end_date", contractEndDate); err != nil {
		return persistence.Employee{}, err
	}
	if employee.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Employee{}, err
	}
	if employee.CompletedAt, err = parseNullableTime("completed_at", completedAt); err != nil {
		return persistence.Employee{}, err
	}

	if employee.HRTasks, err = decodeStrings("hr_tasks", hrTasks); err != nil {
		return persistence.Employee{}, err
	}
	if employee.ITTasks, err = decodeStrings("it_tasks", itTasks); err != nil {
		return persistence.Employee{}, err
	}
	if employee.SecurityTasks, err = decodeStrings("security_tasks", securityTasks); err != nil {
		return persistence.Employee{}, err
	}

	return employee, nil
}

var _ persistence.EmployeeRepository = (*EmployeeRepository)(nil)
