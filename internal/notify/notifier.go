// Package notify delivers the critical-stock sound cue and its optional
// out-of-band notification.
package notify

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// ErrRateLimited is returned when a notification is dropped because the
// previous one was sent too recently.
var ErrRateLimited = errors.New("notification rate limited")

// Notifier sends a critical-stock notification for one user.
type Notifier interface {
	NotifyCriticalStock(ctx context.Context, userID string, items []domain.CriticalItem) error
}
