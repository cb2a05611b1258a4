package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/onboarding-tracker/internal/application"
	"github.com/example/onboarding-tracker/internal/onboarding"
)

type checklistService interface {
	EnsureInstances(ctx context.Context, employeeID string) ([]application.ChecklistInstance, error)
	ListInstances(ctx context.Context, employeeID string) ([]application.ChecklistInstance, error)
	SetTaskStatus(ctx context.Context, params application.SetTaskStatusParams) (application.SetTaskStatusResult, error)
	DepartmentStats(ctx context.Context, employeeID string) ([]application.DepartmentStats, error)
}

type ChecklistHandler struct {
	service   checklistService
	responder responder
	logger    *slog.Logger
}

func NewChecklistHandler(service checklistService, logger *slog.Logger) *ChecklistHandler {
	base := defaultLogger(logger)
	return &ChecklistHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ChecklistHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ChecklistHandler", operation, attrs...)
}

// Instantiate provisions the missing checklist instances of one employee.
func (h *ChecklistHandler) Instantiate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "Instantiate", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id for checklist instantiation")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	logger := h.log(r.Context(), "Instantiate", "employee_id", employeeID)

	instances, err := h.service.EnsureInstances(r.Context(), employeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist instantiation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("instance_count", len(instances)).InfoContext(r.Context(), "checklist instantiated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listInstancesResponse{Instances: toInstanceDTOs(instances)})
}

func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "List", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id for checklist list")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	logger := h.log(r.Context(), "List", "employee_id", employeeID)

	instances, err := h.service.ListInstances(r.Context(), employeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listInstancesResponse{Instances: toInstanceDTOs(instances)})
}

// SetStatus updates one checklist instance, identified by the employee and
// catalog entry resolved from the path.
func (h *ChecklistHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "SetStatus", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id for status change")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	itemID, ok := ItemIDFromContext(r.Context())
	if !ok || strings.TrimSpace(itemID) == "" {
		h.log(r.Context(), "SetStatus", "employee_id", employeeID, "error_kind", "bad_request").ErrorContext(r.Context(), "missing catalog item id for status change")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidItemID)
		return
	}

	var req taskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetStatus", "employee_id", employeeID, "item_id", itemID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status change", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetStatus", "employee_id", employeeID, "item_id", itemID)

	result, err := h.service.SetTaskStatus(r.Context(), application.SetTaskStatusParams{
		EmployeeID:      employeeID,
		ChecklistItemID: itemID,
		Status:          onboarding.TaskStatus(strings.TrimSpace(req.Status)),
		CompletedBy:     strings.TrimSpace(req.CompletedBy),
		Notes:           req.Notes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "task status change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("status", string(result.Instance.Status), "employee_completed", result.EmployeeCompleted).InfoContext(r.Context(), "task status changed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, taskStatusResponse{
		Instance:          toInstanceDTO(result.Instance),
		EmployeeCompleted: result.EmployeeCompleted,
	})
}

func (h *ChecklistHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "Stats", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id for stats")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	logger := h.log(r.Context(), "Stats", "employee_id", employeeID)

	stats, err := h.service.DepartmentStats(r.Context(), employeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "checklist stats failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, statsResponse{Stats: toStatsDTOs(stats)})
}

type taskStatusRequest struct {
	Status      string  `json:"status"`
	CompletedBy string  `json:"completedBy"`
	Notes       *string `json:"notes"`
}

type taskStatusResponse struct {
	Instance          instanceDTO `json:"instance"`
	EmployeeCompleted bool        `json:"employeeCompleted"`
}

type listInstancesResponse struct {
	Instances []instanceDTO `json:"instances"`
}

type instanceDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employeeId"`
	ChecklistItemID string `json:"checklistItemId"`
	Status          string `json:"status"`
	CompletedDate   string `json:"completedDate,omitempty"`
	CompletedBy     string `json:"completedBy,omitempty"`
	Notes           string `json:"notes,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toInstanceDTO(instance application.ChecklistInstance) instanceDTO {
	return instanceDTO{
		ID:              instance.ID,
		EmployeeID:      instance.EmployeeID,
		ChecklistItemID: instance.ChecklistItemID,
		Status:          string(instance.Status),
		CompletedDate:   formatOptionalTimestamp(instance.CompletedDate),
		CompletedBy:     instance.CompletedBy,
		Notes:           instance.Notes,
		CreatedAt:       formatTimestamp(instance.CreatedAt),
		UpdatedAt:       formatTimestamp(instance.UpdatedAt),
	}
}

func toInstanceDTOs(instances []application.ChecklistInstance) []instanceDTO {
	if len(instances) == 0 {
		return nil
	}
	out := make([]instanceDTO, 0, len(instances))
	for _, instance := range instances {
		out = append(out, toInstanceDTO(instance))
	}
	return out
}

type statsResponse struct {
	Stats []departmentStatsDTO `json:"stats"`
}

type departmentStatsDTO struct {
	Department string `json:"department"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
	Mandatory  int    `json:"mandatory"`
}

func toStatsDTOs(stats []application.DepartmentStats) []departmentStatsDTO {
	if len(stats) == 0 {
		return nil
	}
	out := make([]departmentStatsDTO, 0, len(stats))
	for _, entry := range stats {
		out = append(out, departmentStatsDTO{
			Department: string(entry.Department),
			Total:      entry.Total,
			Completed:  entry.Completed,
			InProgress: entry.InProgress,
			Mandatory:  entry.Mandatory,
		})
	}
	return out
}
