package sqlite

import (
	"context"
	"fmt"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// ChecklistItemRepository implements persistence.ChecklistItemRepository
// using SQLite.
type ChecklistItemRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewChecklistItemRepository creates a new SQLite checklist item repository.
func NewChecklistItemRepository(pool *ConnectionPool) *ChecklistItemRepository {
	return &ChecklistItemRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const checklistItemColumns = `id, title, description, responsible, mandatory, estimated_duration, sort_order, category, created_at, updated_at`

// CreateChecklistItem inserts a new catalog entry.
func (r *ChecklistItemRepository) CreateChecklistItem(ctx context.Context, item persistence.ChecklistItem) (persistence.ChecklistItem, error) {
	query := `
		INSERT INTO checklist_items (` + checklistItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.Responsible,
		item.Mandatory,
		item.EstimatedDuration,
		item.Order,
		item.Category,
		encodeTime(item.CreatedAt),
		encodeTime(item.UpdatedAt),
	)
	if err != nil {
		return persistence.ChecklistItem{}, r.mapper.MapError(err)
	}

	return item, nil
}

// UpdateChecklistItem updates an existing catalog entry.
func (r *ChecklistItemRepository) UpdateChecklistItem(ctx context.Context, item persistence.ChecklistItem) (persistence.ChecklistItem, error) {
	query := `
		UPDATE checklist_items
		SET title = ?, description = ?, responsible = ?, mandatory = ?,
			estimated_duration = ?, sort_order = ?, category = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		item.Title,
		item.Description,
		item.Responsible,
		item.Mandatory,
		item.EstimatedDuration,
		item.Order,
		item.Category,
		encodeTime(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return persistence.ChecklistItem{}, r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.ChecklistItem{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.ChecklistItem{}, persistence.ErrNotFound
	}

	return r.GetChecklistItem(ctx, item.ID)
}

// GetChecklistItem retrieves a catalog entry by ID.
func (r *ChecklistItemRepository) GetChecklistItem(ctx context.Context, id string) (persistence.ChecklistItem, error) {
	query := `SELECT ` + checklistItemColumns + ` FROM checklist_items WHERE id = ?`

	row := r.helper.QueryRow(ctx, query, id)
	item, err := scanChecklistItem(row)
	if err != nil {
		return persistence.ChecklistItem{}, r.mapper.MapError(err)
	}

	return item, nil
}

// ListChecklistItems returns the catalog ordered by department, then
// position within the department.
func (r *ChecklistItemRepository) ListChecklistItems(ctx context.Context) ([]persistence.ChecklistItem, error) {
	query := `
		SELECT ` + checklistItemColumns + `
		FROM checklist_items
		ORDER BY
			CASE responsible WHEN 'RH' THEN 0 WHEN 'IT' THEN 1 ELSE 2 END,
			sort_order ASC,
			id ASC
	`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var items []persistence.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return items, nil
}

// DeleteChecklistItem removes a catalog entry by ID.
func (r *ChecklistItemRepository) DeleteChecklistItem(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, "DELETE FROM checklist_items WHERE id = ?", id)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChecklistItem(row rowScanner) (persistence.ChecklistItem, error) {
	var item persistence.ChecklistItem
	var createdAt, updatedAt string

	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Responsible,
		&item.Mandatory,
		&item.EstimatedDuration,
		&item.Order,
		&item.Category,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.ChecklistItem{}, err
	}

	if item.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.ChecklistItem{}, err
	}
	if item.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.ChecklistItem{}, err
	}

	return item, nil
}

var _ persistence.ChecklistItemRepository = (*ChecklistItemRepository)(nil)
