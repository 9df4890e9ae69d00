package notify

import (
	"context"
	"log/slog"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It is
// used when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards notifications with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// NotifyCriticalStock logs and discards the notification.
func (n *NoOpNotifier) NotifyCriticalStock(_ context.Context, userID string, items []domain.CriticalItem) error {
	n.log.Debug("notification discarded (no backend configured)",
		"user_id", userID,
		"critical_items", len(items),
	)
	return nil
}
