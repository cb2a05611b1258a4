package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// CatalogService manages the shared checklist catalog and its cascade into
// per-employee checklist instances.
type CatalogService struct {
	items       persistence.ChecklistItemRepository
	instances   persistence.EmployeeChecklistRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewCatalogService constructs a catalog service with the provided dependencies.
func NewCatalogService(items persistence.ChecklistItemRepository, instances persistence.EmployeeChecklistRepository, idGenerator func() string, now func() time.Time) *CatalogService {
	return NewCatalogServiceWithLogger(items, instances, idGenerator, now, nil)
}

// NewCatalogServiceWithLogger constructs a catalog service with a specified logger.
func NewCatalogServiceWithLogger(items persistence.ChecklistItemRepository, instances persistence.EmployeeChecklistRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *CatalogService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &CatalogService{
		items:       items,
		instances:   instances,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *CatalogService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CatalogService", operation, attrs...)
}

// CreateItem validates input and persists a new catalog task. The display
// order is assigned per responsible department: one past the number of tasks
// that department already owns.
func (s *CatalogService) CreateItem(ctx context.Context, input ChecklistItemInput) (item ChecklistItem, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}
	if s.items == nil {
		err = fmt.Errorf("checklist item repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateItem",
		"responsible", string(input.Responsible),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create checklist item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("checklist_item_id", item.ID).InfoContext(ctx, "checklist item created")
	}()

	vErr := validateChecklistItemInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing []persistence.ChecklistItem
	existing, err = s.items.ListChecklistItems(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	order := 1
	for _, candidate := range existing {
		if candidate.Responsible == string(input.Responsible) {
			order++
		}
	}

	record := persistence.ChecklistItem{
		ID:                s.idGenerator(),
		Title:             strings.TrimSpace(input.Title),
		Description:       strings.TrimSpace(input.Description),
		Responsible:       string(input.Responsible),
		Mandatory:         input.Mandatory,
		EstimatedDuration: input.EstimatedDuration,
		Order:             order,
		Category:          strings.TrimSpace(input.Category),
		CreatedAt:         s.now(),
	}
	record.UpdatedAt = record.CreatedAt

	var persisted persistence.ChecklistItem
	persisted, err = s.items.CreateChecklistItem(ctx, record)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	item = toChecklistItem(persisted)
	return
}

// UpdateItem applies the provided input to an existing catalog task. Updating
// an unknown identifier is not an error: the request is logged and ignored.
func (s *CatalogService) UpdateItem(ctx context.Context, itemID string, input ChecklistItemInput) (item ChecklistItem, found bool, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}
	if s.items == nil {
		err = fmt.Errorf("checklist item repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateItem",
		"checklist_item_id", itemID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update checklist item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if !found {
			logger.WarnContext(ctx, "checklist item not found, update ignored")
			return
		}
		logger.InfoContext(ctx, "checklist item updated")
	}()

	vErr := validateChecklistItemInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing persistence.ChecklistItem
	existing, err = s.items.GetChecklistItem(ctx, itemID)
	if err != nil {
		if isNotFound(err) {
			err = nil
			return
		}
		err = mapRepoError(err)
		return
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.Description = strings.TrimSpace(input.Description)
	updated.Responsible = string(input.Responsible)
	updated.Mandatory = input.Mandatory
	updated.EstimatedDuration = input.EstimatedDuration
	updated.Category = strings.TrimSpace(input.Category)
	updated.UpdatedAt = s.now()

	var persisted persistence.ChecklistItem
	persisted, err = s.items.UpdateChecklistItem(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	item = toChecklistItem(persisted)
	found = true
	return
}

// DeleteItem removes a catalog task and cascades the removal to every
// employee checklist instance derived from it. Deleting an unknown identifier
// is logged and ignored.
func (s *CatalogService) DeleteItem(ctx context.Context, itemID string) (err error) {
	if s == nil {
		return fmt.Errorf("CatalogService is nil")
	}
	if s.items == nil {
		return fmt.Errorf("checklist item repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteItem",
		"checklist_item_id", itemID,
	)

	if err := s.items.DeleteChecklistItem(ctx, itemID); err != nil {
		if isNotFound(err) {
			logger.WarnContext(ctx, "checklist item not found, delete ignored")
			return nil
		}
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete checklist item", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	cascaded := 0
	if s.instances != nil {
		var cascadeErr error
		cascaded, cascadeErr = s.instances.DeleteInstancesForChecklistItem(ctx, itemID)
		if cascadeErr != nil {
			cascadeErr = mapRepoError(cascadeErr)
			logger.ErrorContext(ctx, "failed to cascade checklist item deletion", "error", cascadeErr, "error_kind", ErrorKind(cascadeErr))
			return cascadeErr
		}
	}

	logger.With("cascade_count", cascaded).InfoContext(ctx, "checklist item deleted")
	return nil
}

// ListItems returns the catalog ordered by department then display order.
func (s *CatalogService) ListItems(ctx context.Context) (items []ChecklistItem, err error) {
	if s == nil {
		err = fmt.Errorf("CatalogService is nil")
		return
	}
	if s.items == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListItems")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list checklist items", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(items)).InfoContext(ctx, "checklist items listed")
	}()

	var raw []persistence.ChecklistItem
	raw, err = s.items.ListChecklistItems(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	items = make([]ChecklistItem, 0, len(raw))
	for _, record := range raw {
		items = append(items, toChecklistItem(record))
	}
	return
}

func validateChecklistItemInput(input ChecklistItemInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		vErr.add("description", "description is required")
	}
	if !input.Responsible.Valid() {
		vErr.add("responsible", "responsible must be a known department")
	}
	if input.EstimatedDuration <= 0 {
		vErr.add("estimatedDuration", "estimated duration must be positive")
	}

	return vErr
}
