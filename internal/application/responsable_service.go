package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// ResponsableService manages the departmental contact directory.
type ResponsableService struct {
	responsables persistence.ResponsableRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewResponsableService constructs a responsable service with the provided dependencies.
func NewResponsableService(responsables persistence.ResponsableRepository, idGenerator func() string, now func() time.Time) *ResponsableService {
	return NewResponsableServiceWithLogger(responsables, idGenerator, now, nil)
}

// NewResponsableServiceWithLogger constructs a responsable service with a specified logger.
func NewResponsableServiceWithLogger(responsables persistence.ResponsableRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ResponsableService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ResponsableService{
		responsables: responsables,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *ResponsableService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ResponsableService", operation, attrs...)
}

// CreateResponsable validates input and persists a new directory entry.
func (s *ResponsableService) CreateResponsable(ctx context.Context, input ResponsableInput) (responsable Responsable, err error) {
	if s == nil {
		err = fmt.Errorf("ResponsableService is nil")
		return
	}
	if s.responsables == nil {
		err = fmt.Errorf("responsable repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateResponsable",
		"department", string(input.Department),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create responsable", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("responsable_id", responsable.ID).InfoContext(ctx, "responsable created")
	}()

	vErr := validateResponsableInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	record := persistence.Responsable{
		ID:         s.idGenerator(),
		Name:       strings.TrimSpace(input.Name),
		Role:       strings.TrimSpace(input.Role),
		Department: string(input.Department),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		CreatedAt:  s.now(),
	}
	record.UpdatedAt = record.CreatedAt

	var persisted persistence.Responsable
	persisted, err = s.responsables.CreateResponsable(ctx, record)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	responsable = toResponsable(persisted)
	return
}

// UpdateResponsable validates input and updates an existing directory entry.
func (s *ResponsableService) UpdateResponsable(ctx context.Context, responsableID string, input ResponsableInput) (responsable Responsable, err error) {
	if s == nil {
		err = fmt.Errorf("ResponsableService is nil")
		return
	}
	if s.responsables == nil {
		err = fmt.Errorf("responsable repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateResponsable",
		"responsable_id", responsableID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update responsable", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "responsable updated")
	}()

	vErr := validateResponsableInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing persistence.Responsable
	existing, err = s.responsables.GetResponsable(ctx, responsableID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Role = strings.TrimSpace(input.Role)
	existing.Department = string(input.Department)
	existing.Email = strings.TrimSpace(input.Email)
	existing.Phone = strings.TrimSpace(input.Phone)
	existing.UpdatedAt = s.now()

	var persisted persistence.Responsable
	persisted, err = s.responsables.UpdateResponsable(ctx, existing)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	responsable = toResponsable(persisted)
	return
}

// DeleteResponsable removes a directory entry.
func (s *ResponsableService) DeleteResponsable(ctx context.Context, responsableID string) error {
	if s == nil {
		return fmt.Errorf("ResponsableService is nil")
	}
	if s.responsables == nil {
		return fmt.Errorf("responsable repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteResponsable",
		"responsable_id", responsableID,
	)

	if err := s.responsables.DeleteResponsable(ctx, responsableID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete responsable", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "responsable deleted")
	return nil
}

// ListResponsables returns the directory ordered by name.
func (s *ResponsableService) ListResponsables(ctx context.Context) (responsables []Responsable, err error) {
	if s == nil {
		err = fmt.Errorf("ResponsableService is nil")
		return
	}
	if s.responsables == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListResponsables")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list responsables", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(responsables)).InfoContext(ctx, "responsables listed")
	}()

	var raw []persistence.Responsable
	raw, err = s.responsables.ListResponsables(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	responsables = make([]Responsable, 0, len(raw))
	for _, record := range raw {
		responsables = append(responsables, toResponsable(record))
	}
	return
}

func validateResponsableInput(input ResponsableInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Role) == "" {
		vErr.add("role", "role is required")
	}
	if !input.Department.Valid() {
		vErr.add("department", "department must be a known value")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, parseErr := mail.ParseAddress(email); parseErr != nil {
		vErr.add("email", "email must be a valid address")
	}

	return vErr
}
