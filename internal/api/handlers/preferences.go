package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// SoundPreferences stores the per-user sound flag.
type SoundPreferences interface {
	GetSoundEnabled(ctx context.Context, userID string) (bool, error)
	SetSoundEnabled(ctx context.Context, userID string, enabled bool) error
}

// PreferencesHandler handles the user preference endpoints.
type PreferencesHandler struct {
	prefs SoundPreferences
	log   *slog.Logger
}

// NewPreferencesHandler creates a PreferencesHandler.
func NewPreferencesHandler(p SoundPreferences, log *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{prefs: p, log: log}
}

// SoundBody is the sound preference payload.
type SoundBody struct {
	Enabled bool `json:"enabled" doc:"Play the audio cue when an alert is presented"`
}

// SoundOutput returns the sound preference.
type SoundOutput struct {
	Body SoundBody
}

// SetSoundInput updates the sound preference.
type SetSoundInput struct {
	Body SoundBody
}

// GetSound returns the caller's sound flag.
func (h *PreferencesHandler) GetSound(ctx context.Context, _ *struct{}) (*SoundOutput, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	enabled, err := h.prefs.GetSoundEnabled(ctx, userID)
	if err != nil {
		h.log.Error("reading sound preference", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("reading sound preference failed")
	}
	return &SoundOutput{Body: SoundBody{Enabled: enabled}}, nil
}

// SetSound updates the caller's sound flag.
func (h *PreferencesHandler) SetSound(ctx context.Context, in *SetSoundInput) (*SoundOutput, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.prefs.SetSoundEnabled(ctx, userID, in.Body.Enabled); err != nil {
		h.log.Error("writing sound preference", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("writing sound preference failed")
	}
	return &SoundOutput{Body: in.Body}, nil
}

// RegisterPreferenceRoutes registers preference endpoints with the Huma API.
func RegisterPreferenceRoutes(api huma.API, h *PreferencesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-sound-preference",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences/sound",
		Summary:     "Get sound preference",
		Tags:        []string{"preferences"},
	}, h.GetSound)

	huma.Register(api, huma.Operation{
		OperationID: "set-sound-preference",
		Method:      http.MethodPut,
		Path:        "/api/v1/preferences/sound",
		Summary:     "Set sound preference",
		Tags:        []string{"preferences"},
	}, h.SetSound)
}
