package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/onboarding-tracker/internal/application"
)

var (
	errBadRequestBody       = errors.New("Le format de la requête est invalide.")
	errInvalidEmployeeID    = errors.New("L'identifiant de l'employé est invalide.")
	errInvalidItemID        = errors.New("L'identifiant de la tâche est invalide.")
	errInvalidResponsableID = errors.New("L'identifiant du responsable est invalide.")
	errInvalidEquipmentID   = errors.New("L'identifiant de l'équipement est invalide.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeDownload streams a generated export with attachment headers.
func (r responder) writeDownload(ctx context.Context, w http.ResponseWriter, export application.Export) {
	if w == nil {
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.Content)); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to write export", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "La ressource demandée est introuvable."})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			details := localizeValidationErrors(vErr)
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Les données saisies sont invalides.",
				Errors:  details,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Une erreur interne est survenue."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "La requête est incorrecte."
	case http.StatusNotFound:
		return "La ressource demandée est introuvable."
	case http.StatusConflict:
		return "La requête entre en conflit avec l'état actuel de la ressource."
	case http.StatusUnprocessableEntity:
		return "Les données saisies sont invalides."
	default:
		return "Une erreur interne est survenue."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "title is required":
		return "Le titre est obligatoire."
	case "description is required":
		return "La description est obligatoire."
	case "responsible must be a known department":
		return "Le responsable doit être RH, IT ou Sécurité."
	case "estimated duration must be positive":
		return "La durée estimée doit être positive."
	case "status must be a known task status":
		return "Le statut de la tâche est invalide."
	case "status must be a known onboarding status":
		return "Le statut d'intégration est invalide."
	case "first name is required":
		return "Le prénom est obligatoire."
	case "last name is required":
		return "Le nom est obligatoire."
	case "position is required":
		return "Le poste est obligatoire."
	case "department is required":
		return "Le département est obligatoire."
	case "department must be a known value":
		return "Le département doit être RH, IT ou Sécurité."
	case "arrival date is required":
		return "La date d'arrivée est obligatoire."
	case "contract start date is required":
		return "La date de début de contrat est obligatoire."
	case "contract type must be a known value":
		return "Le type de contrat est invalide."
	case "contract end date is required for fixed-term contracts":
		return "La date de fin de contrat est obligatoire pour un CDD."
	case "name is required":
		return "Le nom est obligatoire."
	case "role is required":
		return "Le rôle est obligatoire."
	case "email is required":
		return "L'adresse e-mail est obligatoire."
	case "email must be a valid address":
		return "L'adresse e-mail est invalide."
	case "mode must be weekly, tomorrow or custom":
		return "Le mode de notification est invalide."
	case "week must use the 2006-W02 form":
		return "La semaine doit suivre le format 2006-W02."
	case "employee is required":
		return "L'employé est obligatoire."
	case "equipment type is required":
		return "Le type d'équipement est obligatoire."
	case "serial number is required":
		return "Le numéro de série est obligatoire."
	case "assigned date is required":
		return "La date d'attribution est obligatoire."
	default:
		return message
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
