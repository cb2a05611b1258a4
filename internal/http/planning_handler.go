package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/onboarding-tracker/internal/application"
	"github.com/example/onboarding-tracker/internal/onboarding"
)

type planningService interface {
	Generate(ctx context.Context, params application.PlanningParams) (application.Planning, error)
	ExportCSV(ctx context.Context, params application.PlanningParams) (application.Export, error)
}

type PlanningHandler struct {
	service   planningService
	responder responder
	logger    *slog.Logger
}

func NewPlanningHandler(service planningService, logger *slog.Logger) *PlanningHandler {
	base := defaultLogger(logger)
	return &PlanningHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *PlanningHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PlanningHandler", operation, attrs...)
}

func planningParamsFromQuery(r *http.Request) application.PlanningParams {
	query := r.URL.Query()
	return application.PlanningParams{
		Week:       strings.TrimSpace(query.Get("week")),
		Department: onboarding.Department(strings.TrimSpace(query.Get("department"))),
	}
}

// Get derives the synthetic planning for the requested week.
func (h *PlanningHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params := planningParamsFromQuery(r)
	logger := h.log(r.Context(), "Get", "week", params.Week)

	planning, err := h.service.Generate(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "planning generation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("task_count", planning.Stats.Total).InfoContext(r.Context(), "planning generated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPlanningDTO(planning))
}

// Export streams the planning as a CSV download.
func (h *PlanningHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params := planningParamsFromQuery(r)
	logger := h.log(r.Context(), "Export", "week", params.Week)

	export, err := h.service.ExportCSV(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "planning export failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("file_name", export.FileName).InfoContext(r.Context(), "planning exported")
	h.responder.writeDownload(r.Context(), w, export)
}

type planningDTO struct {
	Week      string            `json:"week"`
	WeekStart string            `json:"weekStart"`
	Tasks     []planningTaskDTO `json:"tasks"`
	Days      []planningDayDTO  `json:"days"`
	Stats     planningStatsDTO  `json:"stats"`
}

type planningTaskDTO struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employeeId"`
	EmployeeName      string  `json:"employeeName"`
	TaskTitle         string  `json:"taskTitle"`
	Responsible       string  `json:"responsible"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	Start             string  `json:"start"`
	End               string  `json:"end"`
	Status            string  `json:"status"`
	Priority          string  `json:"priority"`
	Mandatory         bool    `json:"mandatory"`
}

type planningDayDTO struct {
	Date  string            `json:"date"`
	Tasks []planningTaskDTO `json:"tasks"`
}

type planningStatsDTO struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Planned    int `json:"planned"`
	Overdue    int `json:"overdue"`
}

func toPlanningDTO(planning application.Planning) planningDTO {
	days := make([]planningDayDTO, 0, len(planning.Days))
	for _, day := range planning.Days {
		days = append(days, planningDayDTO{
			Date:  day.Date,
			Tasks: toPlanningTaskDTOs(day.Tasks),
		})
	}
	if len(days) == 0 {
		days = nil
	}

	return planningDTO{
		Week:      planning.Week,
		WeekStart: formatDate(planning.WeekStart),
		Tasks:     toPlanningTaskDTOs(planning.Tasks),
		Days:      days,
		Stats: planningStatsDTO{
			Total:      planning.Stats.Total,
			Completed:  planning.Stats.Completed,
			InProgress: planning.Stats.InProgress,
			Planned:    planning.Stats.Planned,
			Overdue:    planning.Stats.Overdue,
		},
	}
}

func toPlanningTaskDTOs(tasks []onboarding.PlanningTask) []planningTaskDTO {
	if len(tasks) == 0 {
		return nil
	}
	out := make([]planningTaskDTO, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, planningTaskDTO{
			ID:                task.ID,
			EmployeeID:        task.EmployeeID,
			EmployeeName:      task.EmployeeName,
			TaskTitle:         task.TaskTitle,
			Responsible:       string(task.Responsible),
			EstimatedDuration: task.EstimatedDuration,
			Start:             formatTimestamp(task.Start),
			End:               formatTimestamp(task.End),
			Status:            string(task.Status),
			Priority:          task.Priority,
			Mandatory:         task.Mandatory,
		})
	}
	return out
}
