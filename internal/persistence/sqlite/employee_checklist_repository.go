package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// EmployeeChecklistRepository implements persistence.EmployeeChecklistRepository
// using SQLite.
type EmployeeChecklistRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEmployeeChecklistRepository creates a new SQLite checklist instance
// repository.
func NewEmployeeChecklistRepository(pool *ConnectionPool) *EmployeeChecklistRepository {
	return &EmployeeChecklistRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const instanceColumns = `id, employee_id, checklist_item_id, status, completed_date, completed_by, notes, created_at, updated_at`

// CreateInstance inserts a new checklist instance. The
// (employee_id, checklist_item_id) pair is unique, so re-instantiating an
// existing pair returns persistence.ErrDuplicate.
func (r *EmployeeChecklistRepository) CreateInstance(ctx context.Context, instance persistence.EmployeeChecklistItem) (persistence.EmployeeChecklistItem, error) {
	query := `
		INSERT INTO employee_checklist_items (` + instanceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		instance.ID,
		instance.EmployeeID,
		instance.ChecklistItemID,
		instance.Status,
		encodeNullableTime(instance.CompletedDate),
		instance.CompletedBy,
		instance.Notes,
		encodeTime(instance.CreatedAt),
		encodeTime(instance.UpdatedAt),
	)
	if err != nil {
		return persistence.EmployeeChecklistItem{}, r.mapper.MapError(err)
	}

	return instance, nil
}

// UpdateInstance updates an existing checklist instance.
func (r *EmployeeChecklistRepository) UpdateInstance(ctx context.Context, instance persistence.EmployeeChecklistItem) (persistence.EmployeeChecklistItem, error) {
	query := `
		UPDATE employee_checklist_items
		SET status = ?, completed_date = ?, completed_by = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		instance.Status,
		encodeNullableTime(instance.CompletedDate),
		instance.CompletedBy,
		instance.Notes,
		encodeTime(instance.UpdatedAt),
		instance.ID,
	)
	if err != nil {
		return persistence.EmployeeChecklistItem{}, r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.EmployeeChecklistItem{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.EmployeeChecklistItem{}, persistence.ErrNotFound
	}

	query = `SELECT ` + instanceColumns + ` FROM employee_checklist_items WHERE id = ?`
	updated, err := scanInstance(r.helper.QueryRow(ctx, query, instance.ID))
	if err != nil {
		return persistence.EmployeeChecklistItem{}, r.mapper.MapError(err)
	}

	return updated, nil
}

// GetInstance retrieves the instance for one employee and catalog entry.
func (r *EmployeeChecklistRepository) GetInstance(ctx context.Context, employeeID, checklistItemID string) (persistence.EmployeeChecklistItem, error) {
	query := `
		SELECT ` + instanceColumns + `
		FROM employee_checklist_items
		WHERE employee_id = ? AND checklist_item_id = ?
	`

	instance, err := scanInstance(r.helper.QueryRow(ctx, query, employeeID, checklistItemID))
	if err != nil {
		return persistence.EmployeeChecklistItem{}, r.mapper.MapError(err)
	}

	return instance, nil
}

// ListInstancesForEmployee returns an employee's instances ordered by
// creation time.
func (r *EmployeeChecklistRepository) ListInstancesForEmployee(ctx context.Context, employeeID string) ([]persistence.EmployeeChecklistItem, error) {
	query := `
		SELECT ` + instanceColumns + `
		FROM employee_checklist_items
		WHERE employee_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.helper.Query(ctx, query, employeeID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var instances []persistence.EmployeeChecklistItem
	for rows.Next() {
		instance, err := scanInstance(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		instances = append(instances, instance)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return instances, nil
}

// DeleteInstancesForChecklistItem removes every instance of a catalog entry
// and reports how many records were deleted.
func (r *EmployeeChecklistRepository) DeleteInstancesForChecklistItem(ctx context.Context, checklistItemID string) (int, error) {
	result, err := r.helper.Exec(ctx,
		"DELETE FROM employee_checklist_items WHERE checklist_item_id = ?",
		checklistItemID,
	)
	if err != nil {
		return 0, r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}

func scanInstance(row rowScanner) (persistence.EmployeeChecklistItem, error) {
	var instance persistence.EmployeeChecklistItem
	var completedDate sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&instance.ID,
		&instance.EmployeeID,
		&instance.ChecklistItemID,
		&instance.Status,
		&completedDate,
		&instance.CompletedBy,
		&instance.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.EmployeeChecklistItem{}, err
	}

	if instance.CompletedDate, err = parseNullableTime("completed_date", completedDate); err != nil {
		return persistence.EmployeeChecklistItem{}, err
	}
	if instance.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.EmployeeChecklistItem{}, err
	}
	if instance.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.EmployeeChecklistItem{}, err
	}

	return instance, nil
}

var _ persistence.EmployeeChecklistRepository = (*EmployeeChecklistRepository)(nil)
