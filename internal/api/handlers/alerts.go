package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/mi-caja/internal/store"
	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// AlertService is the slice of the alert gateway the API exposes.
type AlertService interface {
	GetActive(ctx context.Context, userID string) (*domain.Alert, error)
	LastKnown(ctx context.Context, userID string) (*domain.Alert, error)
	Snooze(ctx context.Context, alertID string, kind snooze.Kind) (*domain.Alert, error)
	Deactivate(ctx context.Context, alertID string) error
}

// AlertLookup resolves an alert by id for ownership checks.
type AlertLookup interface {
	GetAlert(ctx context.Context, id string) (*domain.Alert, error)
}

// AlertsHandler handles the alert-record endpoints.
type AlertsHandler struct {
	alerts AlertService
	lookup AlertLookup
	log    *slog.Logger
}

// NewAlertsHandler creates an AlertsHandler.
func NewAlertsHandler(svc AlertService, lookup AlertLookup, log *slog.Logger) *AlertsHandler {
	return &AlertsHandler{alerts: svc, lookup: lookup, log: log}
}

// --- Input/Output types ---

// ActiveAlertOutput is the caller's non-deactivated alert, if any.
type ActiveAlertOutput struct {
	Body struct {
		Alert *domain.Alert `json:"alert"  doc:"Null when the user has no active or snoozed alert"`
		Stale bool          `json:"stale"  doc:"True when served from the cache because the store was unreachable"`
	}
}

// AlertIDInput identifies an alert.
type AlertIDInput struct {
	ID string `path:"id" doc:"Alert UUID"`
}

// SnoozeAlertInput snoozes an alert by id.
type SnoozeAlertInput struct {
	ID   string `path:"id" doc:"Alert UUID"`
	Body struct {
		Kind string `json:"kind" doc:"short (15 min), medium (1 h) or tomorrow (09:00 next day)"`
	}
}

// --- Handlers ---

// GetActive returns the caller's alert, falling back to the last cached copy
// when the store cannot be read.
func (h *AlertsHandler) GetActive(ctx context.Context, _ *struct{}) (*ActiveAlertOutput, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	out := &ActiveAlertOutput{}
	a, err := h.alerts.GetActive(ctx, userID)
	if err == nil {
		out.Body.Alert = a
		return out, nil
	}

	cached, cacheErr := h.alerts.LastKnown(ctx, userID)
	if cacheErr != nil {
		h.log.Error("reading active alert", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("reading active alert failed")
	}

	h.log.Warn("serving cached alert", "user_id", userID, "alert_id", cached.ID, "error", err)
	out.Body.Alert = cached
	out.Body.Stale = true
	return out, nil
}

// Snooze snoozes one of the caller's alerts.
func (h *AlertsHandler) Snooze(ctx context.Context, in *SnoozeAlertInput) (*AlertOutput, error) {
	kind, err := snooze.ParseKind(in.Body.Kind)
	if err != nil {
		return nil, toHTTPError(err, "snoozing alert")
	}
	if err := h.authorize(ctx, in.ID); err != nil {
		return nil, err
	}

	a, err := h.alerts.Snooze(ctx, in.ID, kind)
	if err != nil {
		return nil, toHTTPError(err, "snoozing alert")
	}
	return &AlertOutput{Body: a}, nil
}

// Deactivate closes one of the caller's alerts.
func (h *AlertsHandler) Deactivate(ctx context.Context, in *AlertIDInput) (*struct{}, error) {
	if err := h.authorize(ctx, in.ID); err != nil {
		return nil, err
	}
	if err := h.alerts.Deactivate(ctx, in.ID); err != nil {
		return nil, toHTTPError(err, "deactivating alert")
	}
	return nil, nil
}

// authorize answers 404 for alerts owned by someone else so ids cannot be
// enumerated.
func (h *AlertsHandler) authorize(ctx context.Context, alertID string) error {
	userID, err := caller(ctx)
	if err != nil {
		return err
	}

	a, err := h.lookup.GetAlert(ctx, alertID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("alert not found")
	case err != nil:
		h.log.Error("reading alert", "alert_id", alertID, "error", err)
		return huma.Error500InternalServerError("reading alert failed")
	case a.UserID != userID:
		return huma.Error404NotFound("alert not found")
	}
	return nil
}

// RegisterAlertRoutes registers alert endpoints with the Huma API.
func RegisterAlertRoutes(api huma.API, h *AlertsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-active-alert",
		Method:      http.MethodGet,
		Path:        "/api/v1/alerts/active",
		Summary:     "Get the active alert",
		Description: "Returns the caller's newest non-deactivated alert.",
		Tags:        []string{"alerts"},
	}, h.GetActive)

	huma.Register(api, huma.Operation{
		OperationID: "snooze-alert",
		Method:      http.MethodPost,
		Path:        "/api/v1/alerts/{id}/snooze",
		Summary:     "Snooze an alert",
		Description: "Snoozes the alert until the wake time of the chosen kind and increments its snooze count.",
		Tags:        []string{"alerts"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, h.Snooze)

	huma.Register(api, huma.Operation{
		OperationID:   "deactivate-alert",
		Method:        http.MethodPost,
		Path:          "/api/v1/alerts/{id}/deactivate",
		Summary:       "Deactivate an alert",
		Description:   "Marks the alert deactivated.",
		Tags:          []string{"alerts"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.Deactivate)
}
