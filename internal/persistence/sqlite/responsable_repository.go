package sqlite

import (
	"context"
	"fmt"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// ResponsableRepository implements persistence.ResponsableRepository using
// SQLite.
type ResponsableRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewResponsableRepository creates a new SQLite responsable repository.
func NewResponsableRepository(pool *ConnectionPool) *ResponsableRepository {
	return &ResponsableRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const responsableColumns = `id, name, role, department, email, phone, created_at, updated_at`

// CreateResponsable inserts a new directory entry.
func (r *ResponsableRepository) CreateResponsable(ctx context.Context, responsable persistence.Responsable) (persistence.Responsable, error) {
	query := `
		INSERT INTO responsables (` + responsableColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		responsable.ID,
		responsable.Name,
		responsable.Role,
		responsable.Department,
		responsable.Email,
		responsable.Phone,
		encodeTime(responsable.CreatedAt),
		encodeTime(responsable.UpdatedAt),
	)
	if err != nil {
		return persistence.Responsable{}, r.mapper.MapError(err)
	}

	return responsable, nil
}

// UpdateResponsable updates an existing directory entry.
func (r *ResponsableRepository) UpdateResponsable(ctx context.Context, responsable persistence.Responsable) (persistence.Responsable, error) {
	query := `
		UPDATE responsables
		SET name = ?, role = ?, department = ?, email = ?, phone = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		responsable.Name,
		responsable.Role,
		responsable.Department,
		responsable.Email,
		responsable.Phone,
		encodeTime(responsable.UpdatedAt),
		responsable.ID,
	)
	if err != nil {
		return persistence.Responsable{}, r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.Responsable{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.Responsable{}, persistence.ErrNotFound
	}

	return r.GetResponsable(ctx, responsable.ID)
}

// GetResponsable retrieves a directory entry by ID.
func (r *ResponsableRepository) GetResponsable(ctx context.Context, id string) (persistence.Responsable, error) {
	query := `SELECT ` + responsableColumns + ` FROM responsables WHERE id = ?`

	responsable, err := scanResponsable(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		return persistence.Responsable{}, r.mapper.MapError(err)
	}

	return responsable, nil
}

// ListResponsables returns the directory ordered by name.
func (r *ResponsableRepository) ListResponsables(ctx context.Context) ([]persistence.Responsable, error) {
	query := `SELECT ` + responsableColumns + ` FROM responsables ORDER BY name ASC, id ASC`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var responsables []persistence.Responsable
	for rows.Next() {
		responsable, err := scanResponsable(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		responsables = append(responsables, responsable)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return responsables, nil
}

// DeleteResponsable removes a directory entry by ID.
func (r *ResponsableRepository) DeleteResponsable(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, "DELETE FROM responsables WHERE id = ?", id)
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

func scanResponsable(row rowScanner) (persistence.Responsable, error) {
	var responsable persistence.Responsable
	var createdAt, updatedAt string

	err := row.Scan(
		&responsable.ID,
		&responsable.Name,
		&responsable.Role,
		&responsable.Department,
		&responsable.Email,
		&responsable.Phone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Responsable{}, err
	}

	if responsable.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Responsable{}, err
	}
	if responsable.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.Responsable{}, err
	}

	return responsable, nil
}

var _ persistence.ResponsableRepository = (*ResponsableRepository)(nil)
