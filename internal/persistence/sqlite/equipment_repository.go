package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// EquipmentRepository implements persistence.EquipmentRepository using
// SQLite.
type EquipmentRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEquipmentRepository creates a new SQLite equipment repository.
func NewEquipmentRepository(pool *ConnectionPool) *EquipmentRepository {
	return &EquipmentRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const equipmentColumns = `id, employee_id, employee_name, equipment_type, brand,
	model, specifications, screen_size, serial_number, condition, assigned_date,
	return_date, status, warranty_end_date, notes, assigned_by, created_at, updated_at`

// CreateEquipment inserts a new register entry.
func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment persistence.Equipment) (persistence.Equipment, error) {
	query := `
		INSERT INTO equipment (` + equipmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		equipment.ID,
		equipment.EmployeeID,
		equipment.EmployeeName,
		equipment.EquipmentType,
		equipment.Brand,
		equipment.Model,
		equipment.Specifications,
		equipment.ScreenSize,
		equipment.SerialNumber,
		equipment.Condition,
		encodeTime(equipment.AssignedDate),
		encodeNullableTime(equipment.ReturnDate),
		equipment.Status,
		encodeNullableTime(equipment.WarrantyEndDate),
		equipment.Notes,
		equipment.AssignedBy,
		encodeTime(equipment.CreatedAt),
		encodeTime(equipment.UpdatedAt),
	)
	if err != nil {
		return persistence.Equipment{}, r.mapper.MapError(err)
	}

	return equipment, nil
}

// UpdateEquipment updates an existing register entry.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, equipment persistence.Equipment) (persistence.Equipment, error) {
	query := `
		UPDATE equipment
		SET employee_id = ?, employee_name = ?, equipment_type = ?, brand = ?,
			model = ?, specifications = ?, screen_size = ?, serial_number = ?,
			condition = ?, assigned_date = ?, return_date = ?, status = ?,
			warranty_end_date = ?, notes = ?, assigned_by = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		equipment.EmployeeID,
		equipment.EmployeeName,
		equipment.EquipmentType,
		equipment.Brand,
		equipment.Model,
		equipment.Specifications,
		equipment.ScreenSize,
		equipment.SerialNumber,
		equipment.Condition,
		encodeTime(equipment.AssignedDate),
		encodeNullableTime(equipment.ReturnDate),
		equipment.Status,
		encodeNullableTime(equipment.WarrantyEndDate),
		equipment.Notes,
		equipment.AssignedBy,
		encodeTime(equipment.UpdatedAt),
		equipment.ID,
	)
	if err != nil {
		return persistence.Equipment{}, r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.Equipment{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.Equipment{}, persistence.ErrNotFound
	}

	return r.GetEquipment(ctx, equipment.ID)
}

// GetEquipment retrieves a register entry by ID.
func (r *EquipmentRepository) GetEquipment(ctx context.Context, id string) (persistence.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = ?`

	equipment, err := scanEquipment(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		return persistence.Equipment{}, r.mapper.MapError(err)
	}

	return equipment, nil
}

// ListEquipment returns the register ordered by assignment date, most
// recent first.
func (r *EquipmentRepository) ListEquipment(ctx context.Context) ([]persistence.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY assigned_date DESC, id ASC`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var entries []persistence.Equipment
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		entries = append(entries, equipment)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return entries, nil
}

// DeleteEquipment removes a register entry by ID.
func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, "DELETE FROM equipment WHERE id = ?", id)
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

func scanEquipment(row rowScanner) (persistence.Equipment, error) {
	var equipment persistence.Equipment
	var assignedDate, createdAt, updatedAt string
	var returnDate, warrantyEndDate sql.NullString

	err := row.Scan(
		&equipment.ID,
		&equipment.EmployeeID,
		&equipment.EmployeeName,
		&equipment.EquipmentType,
		&equipment.Brand,
		&equipment.Model,
		&equipment.Specifications,
		&equipment.ScreenSize,
		&equipment.SerialNumber,
		&equipment.Condition,
		&assignedDate,
		&returnDate,
		&equipment.Status,
		&warrantyEndDate,
		&equipment.Notes,
		&equipment.AssignedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Equipment{}, err
	}

	if equipment.AssignedDate, err = parseTime("assigned_date", assignedDate); err != nil {
		return persistence.Equipment{}, err
	}
	if equipment.ReturnDate, err = parseNullableTime("return_date", returnDate); err != nil {
		return persistence.Equipment{}, err
	}
	if equipment.WarrantyEndDate, err = parseNullableTime("warranty_end_date", warrantyEndDate); err != nil {
		return persistence.Equipment{}, err
	}
	if equipment.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Equipment{}, err
	}
	if equipment.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.Equipment{}, err
	}

	return equipment, nil
}

var _ persistence.EquipmentRepository = (*EquipmentRepository)(nil)
