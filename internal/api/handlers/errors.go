package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/mi-caja/internal/auth"
	"github.com/donaldgifford/mi-caja/internal/engine"
	"github.com/donaldgifford/mi-caja/internal/session"
	"github.com/donaldgifford/mi-caja/internal/store"
	"github.com/donaldgifford/mi-caja/pkg/snooze"
)

// toHTTPError maps domain errors onto status codes.
func toHTTPError(err error, what string) error {
	switch {
	case errors.Is(err, snooze.ErrInvalidKind),
		errors.Is(err, engine.ErrMissingAlertID),
		errors.Is(err, engine.ErrMissingUserID):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, session.ErrNotFound):
		return huma.Error404NotFound("session not found")
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound(what + " not found")
	case errors.Is(err, session.ErrForbidden):
		return huma.Error403Forbidden("session belongs to another user")
	case errors.Is(err, engine.ErrNoActiveAlert):
		return huma.Error409Conflict("no alert is being shown")
	case errors.Is(err, engine.ErrAlertDeactivated):
		return huma.Error409Conflict("alert is no longer active")
	default:
		return huma.Error500InternalServerError(what + " failed")
	}
}

// caller returns the authenticated user id or a 401.
func caller(ctx context.Context) (string, error) {
	id, ok := auth.UserID(ctx)
	if !ok {
		return "", huma.Error401Unauthorized("authentication required")
	}
	return id, nil
}
