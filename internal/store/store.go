// Package store defines the row store abstraction for mi-caja.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// Store defines all data access operations for mi-caja.
type Store interface {
	// Stock alerts
	GetActiveAlert(ctx context.Context, userID string) (*domain.Alert, error)
	GetAlert(ctx context.Context, id string) (*domain.Alert, error)
	CreateAlert(ctx context.Context, a *domain.Alert) error
	ReactivateAlert(ctx context.Context, id string, items []domain.CriticalItem, notifiedAt time.Time) error
	UpdateAlertItems(ctx context.Context, id string, items []domain.CriticalItem) error
	// SnoozeAlert returns ErrNotFound when no open (non-deactivated) alert has the id.
	SnoozeAlert(ctx context.Context, id string, until time.Time, kind snooze.Kind, count int) error
	DeactivateAlert(ctx context.Context, id string) error

	// Stock
	ListStock(ctx context.Context, userID string) ([]domain.StockRecord, error)
	UpsertStock(ctx context.Context, userID string, r *domain.StockRecord) error

	// Preferences
	GetSoundEnabled(ctx context.Context, userID string) (bool, error)
	SetSoundEnabled(ctx context.Context, userID string, enabled bool) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
