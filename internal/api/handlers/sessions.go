package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/mi-caja/internal/engine"
	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// SessionManager opens and resolves per-tab sessions.
type SessionManager interface {
	Open(userID string) (string, *engine.Coordinator)
	Get(id, userID string) (*engine.Coordinator, error)
	Close(id, userID string) error
}

// SessionsHandler exposes the alert coordinator of each browser tab.
type SessionsHandler struct {
	sessions SessionManager
}

// NewSessionsHandler creates a SessionsHandler.
func NewSessionsHandler(m SessionManager) *SessionsHandler {
	return &SessionsHandler{sessions: m}
}

// --- Input/Output types ---

// SessionInput identifies a session.
type SessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// PresentationOutput is the popup view of a session.
type PresentationOutput struct {
	Body domain.Presentation
}

// VisibilityInput reports a tab visibility change.
type VisibilityInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Hidden bool `json:"hidden" doc:"True when the tab went to the background"`
	}
}

// CheckOutput is the result of a manual check.
type CheckOutput struct {
	Body struct {
		Ran          bool                `json:"ran"          doc:"False when the check was debounced"`
		Presentation domain.Presentation `json:"presentation"`
	}
}

// SnoozeInput carries the snooze duration choice.
type SnoozeInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Kind string `json:"kind" doc:"short (15 min), medium (1 h) or tomorrow (09:00 next day)"`
	}
}

// AlertOutput wraps a single alert record.
type AlertOutput struct {
	Body *domain.Alert
}

// --- Handlers ---

// Open starts a coordinator for a new tab.
func (h *SessionsHandler) Open(ctx context.Context, _ *struct{}) (*PresentationOutput, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	_, coord := h.sessions.Open(userID)
	return &PresentationOutput{Body: coord.Snapshot()}, nil
}

// Get returns the session's current popup view.
func (h *SessionsHandler) Get(ctx context.Context, in *SessionInput) (*PresentationOutput, error) {
	coord, err := h.resolve(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &PresentationOutput{Body: coord.Snapshot()}, nil
}

// Close tears the session down.
func (h *SessionsHandler) Close(ctx context.Context, in *SessionInput) (*struct{}, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.sessions.Close(in.ID, userID); err != nil {
		return nil, toHTTPError(err, "closing session")
	}
	return nil, nil
}

// Visibility pauses a hidden tab and resumes a visible one.
func (h *SessionsHandler) Visibility(ctx context.Context, in *VisibilityInput) (*PresentationOutput, error) {
	coord, err := h.resolve(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	coord.OnVisibilityChange(in.Body.Hidden)
	return &PresentationOutput{Body: coord.Snapshot()}, nil
}

// Check runs a manual check, subject to the debounce window.
func (h *SessionsHandler) Check(ctx context.Context, in *SessionInput) (*CheckOutput, error) {
	coord, err := h.resolve(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	out := &CheckOutput{}
	out.Body.Ran = coord.Trigger(ctx)
	out.Body.Presentation = coord.Snapshot()
	return out, nil
}

// Dismiss hides the popup and schedules a re-check.
func (h *SessionsHandler) Dismiss(ctx context.Context, in *SessionInput) (*PresentationOutput, error) {
	coord, err := h.resolve(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	coord.Dismiss()
	return &PresentationOutput{Body: coord.Snapshot()}, nil
}

// Snooze snoozes the alert shown in the session.
func (h *SessionsHandler) Snooze(ctx context.Context, in *SnoozeInput) (*AlertOutput, error) {
	coord, err := h.resolve(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	a, err := coord.Snooze(ctx, snooze.Kind(in.Body.Kind))
	if err != nil {
		return nil, toHTTPError(err, "snoozing alert")
	}
	return &AlertOutput{Body: a}, nil
}

func (h *SessionsHandler) resolve(ctx context.Context, id string) (*engine.Coordinator, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	coord, err := h.sessions.Get(id, userID)
	if err != nil {
		return nil, toHTTPError(err, "session")
	}
	return coord, nil
}

// RegisterSessionRoutes registers session endpoints with the Huma API.
func RegisterSessionRoutes(api huma.API, h *SessionsHandler) {
	sessionErrors := []int{http.StatusForbidden, http.StatusNotFound}

	huma.Register(api, huma.Operation{
		OperationID:   "open-session",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Open a session",
		Description:   "Starts an alert coordinator for a browser tab. The first check runs after the initial delay.",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
	}, h.Open)

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get session view",
		Description: "Returns the popup state, critical items and sound sequence of a session.",
		Tags:        []string{"sessions"},
		Errors:      sessionErrors,
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID:   "close-session",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{id}",
		Summary:       "Close a session",
		Description:   "Cancels the session's timers and forgets it.",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
		Errors:        sessionErrors,
	}, h.Close)

	huma.Register(api, huma.Operation{
		OperationID: "set-session-visibility",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/visibility",
		Summary:     "Report tab visibility",
		Description: "Pauses periodic checks while hidden and resumes them when visible again.",
		Tags:        []string{"sessions"},
		Errors:      sessionErrors,
	}, h.Visibility)

	huma.Register(api, huma.Operation{
		OperationID: "check-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/check",
		Summary:     "Run a manual check",
		Description: "Checks stock now unless a check ran within the debounce window.",
		Tags:        []string{"sessions"},
		Errors:      sessionErrors,
	}, h.Check)

	huma.Register(api, huma.Operation{
		OperationID: "dismiss-session-alert",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/dismiss",
		Summary:     "Dismiss the popup",
		Description: "Hides the popup without touching the stored alert and re-checks after the periodic interval.",
		Tags:        []string{"sessions"},
		Errors:      sessionErrors,
	}, h.Dismiss)

	huma.Register(api, huma.Operation{
		OperationID: "snooze-session-alert",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/snooze",
		Summary:     "Snooze the shown alert",
		Description: "Hides the popup and snoozes the alert for the chosen duration.",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusConflict},
	}, h.Snooze)
}
