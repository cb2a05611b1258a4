package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/onboarding-tracker/internal/application"
)

type equipmentService interface {
	CreateEquipment(ctx context.Context, input application.EquipmentInput) (application.Equipment, error)
	UpdateEquipment(ctx context.Context, equipmentID string, input application.EquipmentInput) (application.Equipment, error)
	DeleteEquipment(ctx context.Context, equipmentID string) error
	ListEquipment(ctx context.Context) ([]application.Equipment, error)
	ExportCSV(ctx context.Context) (application.Export, error)
}

type EquipmentHandler struct {
	service   equipmentService
	responder responder
	logger    *slog.Logger
}

func NewEquipmentHandler(service equipmentService, logger *slog.Logger) *EquipmentHandler {
	base := defaultLogger(logger)
	return &EquipmentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EquipmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EquipmentHandler", operation, attrs...)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode equipment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to parse equipment dates", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	equipment, err := h.service.CreateEquipment(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("equipment_id", equipment.ID).InfoContext(r.Context(), "equipment created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, equipmentResponse{Equipment: toEquipmentDTO(equipment)})
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	equipmentID, ok := EquipmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(equipmentID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing equipment id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEquipmentID)
		return
	}

	var req equipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "equipment_id", equipmentID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode equipment update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Update", "equipment_id", equipmentID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to parse equipment dates", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "equipment_id", equipmentID)

	equipment, err := h.service.UpdateEquipment(r.Context(), equipmentID, input)
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "equipment updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, equipmentResponse{Equipment: toEquipmentDTO(equipment)})
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	equipmentID, ok := EquipmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(equipmentID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing equipment id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEquipmentID)
		return
	}

	logger := h.log(r.Context(), "Delete", "equipment_id", equipmentID)

	if err := h.service.DeleteEquipment(r.Context(), equipmentID); err != nil {
		logger.ErrorContext(r.Context(), "equipment delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "equipment deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	entries, err := h.service.ListEquipment(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(entries)).InfoContext(r.Context(), "equipment listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEquipmentResponse{Equipment: toEquipmentDTOs(entries)})
}

// Export streams the register as a CSV download.
func (h *EquipmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Export")

	export, err := h.service.ExportCSV(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "equipment export failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("file_name", export.FileName).InfoContext(r.Context(), "equipment exported")
	h.responder.writeDownload(r.Context(), w, export)
}

type equipmentRequest struct {
	EmployeeID      string `json:"employeeId"`
	EquipmentType   string `json:"equipmentType"`
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	Specifications  string `json:"specifications"`
	ScreenSize      string `json:"screenSize"`
	SerialNumber    string `json:"serialNumber"`
	Condition       string `json:"condition"`
	AssignedDate    string `json:"assignedDate"`
	ReturnDate      string `json:"returnDate"`
	Status          string `json:"status"`
	WarrantyEndDate string `json:"warrantyEndDate"`
	Notes           string `json:"notes"`
	AssignedBy      string `json:"assignedBy"`
}

func (r equipmentRequest) toInput() (application.EquipmentInput, error) {
	assignedDate, err := parseDateField(r.AssignedDate)
	if err != nil {
		return application.EquipmentInput{}, err
	}
	returnDate, err := parseOptionalDateField(r.ReturnDate)
	if err != nil {
		return application.EquipmentInput{}, err
	}
	warrantyEndDate, err := parseOptionalDateField(r.WarrantyEndDate)
	if err != nil {
		return application.EquipmentInput{}, err
	}

	return application.EquipmentInput{
		EmployeeID:      strings.TrimSpace(r.EmployeeID),
		EquipmentType:   strings.TrimSpace(r.EquipmentType),
		Brand:           strings.TrimSpace(r.Brand),
		Model:           strings.TrimSpace(r.Model),
		Specifications:  strings.TrimSpace(r.Specifications),
		ScreenSize:      strings.TrimSpace(r.ScreenSize),
		SerialNumber:    strings.TrimSpace(r.SerialNumber),
		Condition:       strings.TrimSpace(r.Condition),
		AssignedDate:    assignedDate,
		ReturnDate:      returnDate,
		Status:          strings.TrimSpace(r.Status),
		WarrantyEndDate: warrantyEndDate,
		Notes:           strings.TrimSpace(r.Notes),
		AssignedBy:      strings.TrimSpace(r.AssignedBy),
	}, nil
}

type equipmentResponse struct {
	Equipment equipmentDTO `json:"equipment"`
}

type listEquipmentResponse struct {
	Equipment []equipmentDTO `json:"equipment"`
}

type equipmentDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employeeId"`
	EmployeeName    string `json:"employeeName"`
	EquipmentType   string `json:"equipmentType"`
	Brand           string `json:"brand,omitempty"`
	Model           string `json:"model,omitempty"`
	Specifications  string `json:"specifications,omitempty"`
	ScreenSize      string `json:"screenSize,omitempty"`
	SerialNumber    string `json:"serialNumber"`
	Condition       string `json:"condition,omitempty"`
	AssignedDate    string `json:"assignedDate"`
	ReturnDate      string `json:"returnDate,omitempty"`
	Status          string `json:"status"`
	WarrantyEndDate string `json:"warrantyEndDate,omitempty"`
	Notes           string `json:"notes,omitempty"`
	AssignedBy      string `json:"assignedBy,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toEquipmentDTO(equipment application.Equipment) equipmentDTO {
	return equipmentDTO{
		ID:              equipment.ID,
		EmployeeID:      equipment.EmployeeID,
		EmployeeName:    equipment.EmployeeName,
		EquipmentType:   equipment.EquipmentType,
		Brand:           equipment.Brand,
		Model:           equipment.Model,
		Specifications:  equipment.Specifications,
		ScreenSize:      equipment.ScreenSize,
		SerialNumber:    equipment.SerialNumber,
		Condition:       equipment.Condition,
		AssignedDate:    formatDate(equipment.AssignedDate),
		ReturnDate:      formatOptionalDate(equipment.ReturnDate),
		Status:          equipment.Status,
		WarrantyEndDate: formatOptionalDate(equipment.WarrantyEndDate),
		Notes:           equipment.Notes,
		AssignedBy:      equipment.AssignedBy,
		CreatedAt:       formatTimestamp(equipment.CreatedAt),
		UpdatedAt:       formatTimestamp(equipment.UpdatedAt),
	}
}

func toEquipmentDTOs(entries []application.Equipment) []equipmentDTO {
	if len(entries) == 0 {
		return nil
	}
	out := make([]equipmentDTO, 0, len(entries))
	for _, equipment := range entries {
		out = append(out, toEquipmentDTO(equipment))
	}
	return out
}
