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

type employeeService interface {
	CreateEmployee(ctx context.Context, input application.EmployeeInput) (application.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, input application.EmployeeInput) (application.Employee, error)
	UpdateStatus(ctx context.Context, employeeID string, status onboarding.EmployeeStatus) (application.Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (application.Employee, error)
	ListEmployees(ctx context.Context) ([]application.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) error
	UpcomingArrivals(ctx context.Context) ([]application.Employee, error)
	KPI(ctx context.Context) (application.KPIReport, error)
}

type EmployeeHandler struct {
	service   employeeService
	responder responder
	logger    *slog.Logger
}

func NewEmployeeHandler(service employeeService, logger *slog.Logger) *EmployeeHandler {
	base := defaultLogger(logger)
	return &EmployeeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EmployeeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EmployeeHandler", operation, attrs...)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to parse employee dates", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	employee, err := h.service.CreateEmployee(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "employee creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("employee_id", employee.ID).InfoContext(r.Context(), "employee created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "employee_id", employeeID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Update", "employee_id", employeeID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to parse employee dates", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "employee_id", employeeID)

	employee, err := h.service.UpdateEmployee(r.Context(), employeeID, input)
	if err != nil {
		logger.ErrorContext(r.Context(), "employee update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "UpdateStatus", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id for status update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStatus", "employee_id", employeeID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStatus", "employee_id", employeeID)

	employee, err := h.service.UpdateStatus(r.Context(), employeeID, onboarding.EmployeeStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		logger.ErrorContext(r.Context(), "status update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("status", string(employee.Status)).InfoContext(r.Context(), "employee status updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	logger := h.log(r.Context(), "Get", "employee_id", employeeID)

	employee, err := h.service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "employee fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(employee)})
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "employee list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(employees)).InfoContext(r.Context(), "employees listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEmployeesResponse{Employees: toEmployeeDTOs(employees)})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	logger := h.log(r.Context(), "Delete", "employee_id", employeeID)

	if err := h.service.DeleteEmployee(r.Context(), employeeID); err != nil {
		logger.ErrorContext(r.Context(), "employee delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EmployeeHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Upcoming")

	employees, err := h.service.UpcomingArrivals(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "upcoming arrivals failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEmployeesResponse{Employees: toEmployeeDTOs(employees)})
}

func (h *EmployeeHandler) KPI(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "KPI")

	report, err := h.service.KPI(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "kpi report failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, kpiDTO{
		IntegrationsThisWeek:  report.IntegrationsThisWeek,
		IntegrationsOverdue:   report.IntegrationsOverdue,
		IntegrationsCompleted: report.IntegrationsCompleted,
		AverageDurationDays:   report.AverageDurationDays,
	})
}

type employeeRequest struct {
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Position            string   `json:"position"`
	Department          string   `json:"department"`
	Site                string   `json:"site"`
	ArrivalDate         string   `json:"arrivalDate"`
	ContractStartDate   string   `json:"contractStartDate"`
	ContractEndDate     string   `json:"contractEndDate"`
	ContractType        string   `json:"contractType"`
	RequiredPPE         string   `json:"requiredPPE"`
	PlannedTraining     string   `json:"plannedTraining"`
	HRResponsible       string   `json:"hrResponsible"`
	ITResponsible       string   `json:"itResponsible"`
	SecurityResponsible string   `json:"securityResponsible"`
	HRTasks             []string `json:"hrTasks"`
	ITTasks             []string `json:"itTasks"`
	SecurityTasks       []string `json:"securityTasks"`
	AdditionalComments  string   `json:"additionalComments"`
}

func (r employeeRequest) toInput() (application.EmployeeInput, error) {
	arrivalDate, err := parseDateField(r.ArrivalDate)
	if err != nil {
		return application.EmployeeInput{}, err
	}
	contractStartDate, err := parseDateField(r.ContractStartDate)
	if err != nil {
		return application.EmployeeInput{}, err
	}
	contractEndDate, err := parseOptionalDateField(r.ContractEndDate)
	if err != nil {
		return application.EmployeeInput{}, err
	}

	return application.EmployeeInput{
		FirstName:           strings.TrimSpace(r.FirstName),
		LastName:            strings.TrimSpace(r.LastName),
		Position:            strings.TrimSpace(r.Position),
		Department:          strings.TrimSpace(r.Department),
		Site:                strings.TrimSpace(r.Site),
		ArrivalDate:         arrivalDate,
		ContractStartDate:   contractStartDate,
		ContractEndDate:     contractEndDate,
		ContractType:        onboarding.ContractType(strings.TrimSpace(r.ContractType)),
		RequiredPPE:         strings.TrimSpace(r.RequiredPPE),
		PlannedTraining:     strings.TrimSpace(r.PlannedTraining),
		HRResponsible:       strings.TrimSpace(r.HRResponsible),
		ITResponsible:       strings.TrimSpace(r.ITResponsible),
		SecurityResponsible: strings.TrimSpace(r.SecurityResponsible),
		HRTasks:             r.HRTasks,
		ITTasks:             r.ITTasks,
		SecurityTasks:       r.SecurityTasks,
		AdditionalComments:  strings.TrimSpace(r.AdditionalComments),
	}, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

type employeeResponse struct {
	Employee employeeDTO `json:"employee"`
}

type listEmployeesResponse struct {
	Employees []employeeDTO `json:"employees"`
}

type employeeDTO struct {
	ID                  string   `json:"id"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Position            string   `json:"position"`
	Department          string   `json:"department"`
	Site                string   `json:"site,omitempty"`
	ArrivalDate         string   `json:"arrivalDate"`
	ContractStartDate   string   `json:"contractStartDate"`
	ContractEndDate     string   `json:"contractEndDate,omitempty"`
	ContractType        string   `json:"contractType"`
	RequiredPPE         string   `json:"requiredPPE,omitempty"`
	PlannedTraining     string   `json:"plannedTraining,omitempty"`
	HRResponsible       string   `json:"hrResponsible,omitempty"`
	ITResponsible       string   `json:"itResponsible,omitempty"`
	SecurityResponsible string   `json:"securityResponsible,omitempty"`
	HRTasks             []string `json:"hrTasks,omitempty"`
	ITTasks             []string `json:"itTasks,omitempty"`
	SecurityTasks       []string `json:"securityTasks,omitempty"`
	AdditionalComments  string   `json:"additionalComments,omitempty"`
	Status              string   `json:"status"`
	CreatedAt           string   `json:"createdAt"`
	CompletedAt         string   `json:"completedAt,omitempty"`
}

type kpiDTO struct {
	IntegrationsThisWeek  int `json:"integrationsThisWeek"`
	IntegrationsOverdue   int `json:"integrationsOverdue"`
	IntegrationsCompleted int `json:"integrationsCompleted"`
	AverageDurationDays   int `json:"averageDurationDays"`
}

func toEmployeeDTO(employee application.Employee) employeeDTO {
	return employeeDTO{
		ID:                  employee.ID,
		FirstName:           employee.FirstName,
		LastName:            employee.LastName,
		Position:            employee.Position,
		Department:          employee.Department,
		Site:                employee.Site,
		ArrivalDate:         formatDate(employee.ArrivalDate),
		ContractStartDate:   formatDate(employee.ContractStartDate),
		ContractEndDate:     formatOptionalDate(employee.ContractEndDate),
		ContractType:        string(employee.ContractType),
		RequiredPPE:         employee.RequiredPPE,
		PlannedTraining:     employee.PlannedTraining,
		HRResponsible:       employee.HRResponsible,
		ITResponsible:       employee.ITResponsible,
		SecurityResponsible: employee.SecurityResponsible,
		HRTasks:             employee.HRTasks,
		ITTasks:             employee.ITTasks,
		SecurityTasks:       employee.SecurityTasks,
		AdditionalComments:  employee.AdditionalComments,
		Status:              string(employee.Status),
		CreatedAt:           formatTimestamp(employee.CreatedAt),
		CompletedAt:         formatOptionalTimestamp(employee.CompletedAt),
	}
}

func toEmployeeDTOs(employees []application.Employee) []employeeDTO {
	if len(employees) == 0 {
		return nil
	}
	out := make([]employeeDTO, 0, len(employees))
	for _, employee := range employees {
		out = append(out, toEmployeeDTO(employee))
	}
	return out
}
