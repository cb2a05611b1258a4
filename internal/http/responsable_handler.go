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

type responsableService interface {
	CreateResponsable(ctx context.Context, input application.ResponsableInput) (application.Responsable, error)
	UpdateResponsable(ctx context.Context, responsableID string, input application.ResponsableInput) (application.Responsable, error)
	DeleteResponsable(ctx context.Context, responsableID string) error
	ListResponsables(ctx context.Context) ([]application.Responsable, error)
}

type ResponsableHandler struct {
	service   responsableService
	responder responder
	logger    *slog.Logger
}

func NewResponsableHandler(service responsableService, logger *slog.Logger) *ResponsableHandler {
	base := defaultLogger(logger)
	return &ResponsableHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ResponsableHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ResponsableHandler", operation, attrs...)
}

func (h *ResponsableHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req responsableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode responsable request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	responsable, err := h.service.CreateResponsable(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "responsable creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("responsable_id", responsable.ID).InfoContext(r.Context(), "responsable created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, responsableResponse{Responsable: toResponsableDTO(responsable)})
}

func (h *ResponsableHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	responsableID, ok := ResponsableIDFromContext(r.Context())
	if !ok || strings.TrimSpace(responsableID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing responsable id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResponsableID)
		return
	}

	var req responsableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "responsable_id", responsableID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode responsable update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "responsable_id", responsableID)

	responsable, err := h.service.UpdateResponsable(r.Context(), responsableID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "responsable update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "responsable updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, responsableResponse{Responsable: toResponsableDTO(responsable)})
}

func (h *ResponsableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	responsableID, ok := ResponsableIDFromContext(r.Context())
	if !ok || strings.TrimSpace(responsableID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing responsable id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResponsableID)
		return
	}

	logger := h.log(r.Context(), "Delete", "responsable_id", responsableID)

	if err := h.service.DeleteResponsable(r.Context(), responsableID); err != nil {
		logger.ErrorContext(r.Context(), "responsable delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "responsable deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ResponsableHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	responsables, err := h.service.ListResponsables(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "responsable list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(responsables)).InfoContext(r.Context(), "responsables listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listResponsablesResponse{Responsables: toResponsableDTOs(responsables)})
}

type responsableRequest struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (r responsableRequest) toInput() application.ResponsableInput {
	return application.ResponsableInput{
		Name:       strings.TrimSpace(r.Name),
		Role:       strings.TrimSpace(r.Role),
		Department: onboarding.Department(strings.TrimSpace(r.Department)),
		Email:      strings.TrimSpace(r.Email),
		Phone:      strings.TrimSpace(r.Phone),
	}
}

type responsableResponse struct {
	Responsable responsableDTO `json:"responsable"`
}

type listResponsablesResponse struct {
	Responsables []responsableDTO `json:"responsables"`
}

type responsableDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func toResponsableDTO(responsable application.Responsable) responsableDTO {
	return responsableDTO{
		ID:         responsable.ID,
		Name:       responsable.Name,
		Role:       responsable.Role,
		Department: string(responsable.Department),
		Email:      responsable.Email,
		Phone:      responsable.Phone,
		CreatedAt:  formatTimestamp(responsable.CreatedAt),
		UpdatedAt:  formatTimestamp(responsable.UpdatedAt),
	}
}

func toResponsableDTOs(responsables []application.Responsable) []responsableDTO {
	if len(responsables) == 0 {
		return nil
	}
	out := make([]responsableDTO, 0, len(responsables))
	for _, responsable := range responsables {
		out = append(out, toResponsableDTO(responsable))
	}
	return out
}
