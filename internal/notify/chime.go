package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/donaldgifford/mi-caja/internal/metrics"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// Preferences reads the persistent per-user sound flag.
type Preferences interface {
	GetSoundEnabled(ctx context.Context, userID string) (bool, error)
}

// Chime decides whether the audio cue should play for a presented alert and
// forwards the critical items to a Notifier when it does.
type Chime struct {
	prefs    Preferences
	notifier Notifier
	log      *slog.Logger
}

// NewChime creates a Chime. A nil notifier disables forwarding.
func NewChime(prefs Preferences, notifier Notifier, log *slog.Logger) *Chime {
	if log == nil {
		log = slog.Default()
	}
	return &Chime{prefs: prefs, notifier: notifier, log: log}
}

// Play reports whether the browser should play the audio cue. It never fails:
// a preference lookup error falls back to sound on, and notifier errors are
// logged and counted.
func (c *Chime) Play(ctx context.Context, userID string, items []domain.CriticalItem) bool {
	enabled, err := c.prefs.GetSoundEnabled(ctx, userID)
	if err != nil {
		c.log.Warn("reading sound preference, defaulting to on",
			"user_id", userID,
			"error", err,
		)
		enabled = true
	}
	if !enabled {
		c.log.Debug("sound cue muted by preference", "user_id", userID)
		return false
	}

	metrics.SoundCuesTotal.Inc()

	if c.notifier == nil {
		return true
	}

	if err := c.notifier.NotifyCriticalStock(ctx, userID, items); err != nil {
		if errors.Is(err, ErrRateLimited) {
			c.log.Debug("critical stock notification skipped", "user_id", userID)
			return true
		}
		metrics.NotificationFailuresTotal.Inc()
		c.log.Warn("sending critical stock notification",
			"user_id", userID,
			"critical_items", len(items),
			"error", err,
		)
	}

	return true
}
