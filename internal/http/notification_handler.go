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

type notificationService interface {
	Preview(ctx context.Context, request application.NotificationRequest) (application.NotificationBatch, error)
	Dispatch(ctx context.Context, request application.NotificationRequest) (application.NotificationBatch, error)
	ListNotifications(ctx context.Context) ([]application.Notification, error)
}

type NotificationHandler struct {
	service   notificationService
	responder responder
	logger    *slog.Logger
}

func NewNotificationHandler(service notificationService, logger *slog.Logger) *NotificationHandler {
	base := defaultLogger(logger)
	return &NotificationHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *NotificationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "NotificationHandler", operation, attrs...)
}

// Preview composes a batch without writing to the log.
func (h *NotificationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, "Preview", false)
}

// Dispatch composes a batch and records it in the log.
func (h *NotificationHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	h.compose(w, r, "Dispatch", true)
}

func (h *NotificationHandler) compose(w http.ResponseWriter, r *http.Request, operation string, dispatch bool) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode notification request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), operation, "mode", req.Mode)

	var batch application.NotificationBatch
	var err error
	if dispatch {
		batch, err = h.service.Dispatch(r.Context(), req.toRequest())
	} else {
		batch, err = h.service.Preview(r.Context(), req.toRequest())
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "notification compose failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	status := http.StatusOK
	if dispatch {
		status = http.StatusCreated
		logger.With("recipient_count", len(batch.Notification.Recipients), "artifact_count", len(batch.Artifacts)).InfoContext(r.Context(), "notification dispatched")
	}

	h.responder.writeJSON(r.Context(), w, status, toBatchDTO(batch))
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")

	notifications, err := h.service.ListNotifications(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "notification list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(notifications)).InfoContext(r.Context(), "notifications listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listNotificationsResponse{Notifications: toNotificationDTOs(notifications)})
}

type notificationRequest struct {
	Mode          string              `json:"mode"`
	CustomMessage string              `json:"customMessage"`
	Departments   []string            `json:"departments"`
	Selections    []selectionRequest  `json:"selections"`
}

type selectionRequest struct {
	EmployeeID string              `json:"employeeId"`
	Tasks      map[string][]string `json:"tasks"`
}

func (r notificationRequest) toRequest() application.NotificationRequest {
	departments := make([]onboarding.Department, 0, len(r.Departments))
	for _, department := range r.Departments {
		departments = append(departments, onboarding.Department(strings.TrimSpace(department)))
	}

	selections := make([]application.EmployeeSelection, 0, len(r.Selections))
	for _, selection := range r.Selections {
		var tasks map[onboarding.Department][]string
		if selection.Tasks != nil {
			tasks = make(map[onboarding.Department][]string, len(selection.Tasks))
			for department, ids := range selection.Tasks {
				tasks[onboarding.Department(strings.TrimSpace(department))] = ids
			}
		}
		selections = append(selections, application.EmployeeSelection{
			EmployeeID: strings.TrimSpace(selection.EmployeeID),
			Tasks:      tasks,
		})
	}

	return application.NotificationRequest{
		Mode:          application.NotificationMode(strings.TrimSpace(r.Mode)),
		CustomMessage: strings.TrimSpace(r.CustomMessage),
		Departments:   departments,
		Selections:    selections,
	}
}

type batchDTO struct {
	Notification notificationDTO `json:"notification"`
	Artifacts    []artifactDTO   `json:"artifacts,omitempty"`
}

type notificationDTO struct {
	ID         string   `json:"id"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
	SentAt     string   `json:"sentAt"`
	Type       string   `json:"type"`
	EmployeeID string   `json:"employeeId,omitempty"`
	Status     string   `json:"status"`
}

type artifactDTO struct {
	EmployeeID string `json:"employeeId"`
	FileName   string `json:"fileName"`
	Content    string `json:"content"`
}

type listNotificationsResponse struct {
	Notifications []notificationDTO `json:"notifications"`
}

func toBatchDTO(batch application.NotificationBatch) batchDTO {
	artifacts := make([]artifactDTO, 0, len(batch.Artifacts))
	for _, artifact := range batch.Artifacts {
		artifacts = append(artifacts, artifactDTO{
			EmployeeID: artifact.EmployeeID,
			FileName:   artifact.FileName,
			Content:    artifact.Content,
		})
	}
	if len(artifacts) == 0 {
		artifacts = nil
	}

	return batchDTO{
		Notification: toNotificationDTO(batch.Notification),
		Artifacts:    artifacts,
	}
}

func toNotificationDTO(notification application.Notification) notificationDTO {
	return notificationDTO{
		ID:         notification.ID,
		Subject:    notification.Subject,
		Message:    notification.Message,
		Recipients: notification.Recipients,
		SentAt:     formatTimestamp(notification.SentAt),
		Type:       notification.Type,
		EmployeeID: notification.EmployeeID,
		Status:     notification.Status,
	}
}

func toNotificationDTOs(notifications []application.Notification) []notificationDTO {
	if len(notifications) == 0 {
		return nil
	}
	out := make([]notificationDTO, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, toNotificationDTO(notification))
	}
	return out
}
