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

type catalogService interface {
	CreateItem(ctx context.Context, input application.ChecklistItemInput) (application.ChecklistItem, error)
	UpdateItem(ctx context.Context, itemID string, input application.ChecklistItemInput) (application.ChecklistItem, bool, error)
	DeleteItem(ctx context.Context, itemID string) error
	ListItems(ctx context.Context) ([]application.ChecklistItem, error)
}

type CatalogHandler struct {
	service   catalogService
	responder responder
	logger    *slog.Logger
}

func NewCatalogHandler(service catalogService, logger *slog.Logger) *CatalogHandler {
	base := defaultLogger(logger)
	return &CatalogHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CatalogHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CatalogHandler", operation, attrs...)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req checklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode catalog request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	item, err := h.service.CreateItem(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "catalog item creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("item_id", item.ID).InfoContext(r.Context(), "catalog item created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, checklistItemResponse{Item: toChecklistItemDTO(item)})
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, ok := ItemIDFromContext(r.Context())
	if !ok || strings.TrimSpace(itemID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing catalog item id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidItemID)
		return
	}

	var req checklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "item_id", itemID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode catalog update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "item_id", itemID)

	item, found, err := h.service.UpdateItem(r.Context(), itemID, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "catalog item update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	// Updating an unknown entry is deliberately a no-op rather than an
	// error, mirroring how the dashboard treats stale edits.
	if !found {
		logger.InfoContext(r.Context(), "catalog item update ignored")
		h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
		return
	}

	logger.InfoContext(r.Context(), "catalog item updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, checklistItemResponse{Item: toChecklistItemDTO(item)})
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	itemID, ok := ItemIDFromContext(r.Context())
	if !ok || strings.TrimSpace(itemID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing catalog item id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidItemID)
		return
	}

	logger := h.log(r.Context(), "Delete", "item_id", itemID)

	if err := h.service.DeleteItem(r.Context(), itemID); err != nil {
		logger.ErrorContext(r.Context(), "catalog item delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "catalog item deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	items, err := h.service.ListItems(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "catalog list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "catalog listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listChecklistItemsResponse{Items: toChecklistItemDTOs(items)})
}

type checklistItemRequest struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Responsible       string  `json:"responsible"`
	Mandatory         bool    `json:"mandatory"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	Category          string  `json:"category"`
}

func (r checklistItemRequest) toInput() application.ChecklistItemInput {
	return application.ChecklistItemInput{
		Title:             strings.TrimSpace(r.Title),
		Description:       strings.TrimSpace(r.Description),
		Responsible:       onboarding.Department(strings.TrimSpace(r.Responsible)),
		Mandatory:         r.Mandatory,
		EstimatedDuration: r.EstimatedDuration,
		Category:          strings.TrimSpace(r.Category),
	}
}

type checklistItemResponse struct {
	Item checklistItemDTO `json:"item"`
}

type listChecklistItemsResponse struct {
	Items []checklistItemDTO `json:"items"`
}

type checklistItemDTO struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Responsible       string  `json:"responsible"`
	Mandatory         bool    `json:"mandatory"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	Order             int     `json:"order"`
	Category          string  `json:"category,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

func toChecklistItemDTO(item application.ChecklistItem) checklistItemDTO {
	return checklistItemDTO{
		ID:                item.ID,
		Title:             item.Title,
		Description:       item.Description,
		Responsible:       string(item.Responsible),
		Mandatory:         item.Mandatory,
		EstimatedDuration: item.EstimatedDuration,
		Order:             item.Order,
		Category:          item.Category,
		CreatedAt:         formatTimestamp(item.CreatedAt),
		UpdatedAt:         formatTimestamp(item.UpdatedAt),
	}
}

func toChecklistItemDTOs(items []application.ChecklistItem) []checklistItemDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]checklistItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toChecklistItemDTO(item))
	}
	return out
}
