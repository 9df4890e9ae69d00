// Package domain defines the core business types for the Mi Caja stock-alert engine.
package domain

import (
	"time"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
)

// AlertState is the lifecycle state of a persisted stock alert.
type AlertState string

// Alert state constants.
const (
	AlertActive      AlertState = "active"
	AlertSnoozed     AlertState = "snoozed"
	AlertDeactivated AlertState = "deactivated"
)

// StockRecord is one inventory item's current stock as read from the row store.
// AvailableQuantity is nil when the row has no quantity recorded.
type StockRecord struct {
	ID                string   `json:"id"                           db:"id"`
	Name              string   `json:"name"                         db:"name"`
	AvailableQuantity *float64 `json:"available_quantity,omitempty" db:"available_quantity"`
	Unit              string   `json:"unit,omitempty"               db:"unit"`
}

// CriticalItem is a stock record at or below the critical threshold.
type CriticalItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Alert is the persisted alert-state record for one user.
type Alert struct {
	ID             string         `json:"id"                      db:"id"`
	UserID         string         `json:"user_id"                 db:"user_id"`
	State          AlertState     `json:"state"                   db:"state"`
	CriticalItems  []CriticalItem `json:"critical_items"          db:"critical_items"`
	LastNotifiedAt time.Time      `json:"last_notified_at"        db:"last_notified_at"`
	SnoozedUntil   *time.Time     `json:"snoozed_until,omitempty" db:"snoozed_until"`
	SnoozeKind     *snooze.Kind   `json:"snooze_kind,omitempty"   db:"snooze_kind"`
	SnoozeCount    int            `json:"snooze_count"            db:"snooze_count"`
	CreatedAt      time.Time      `json:"created_at"              db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"              db:"updated_at"`
}

// SnoozeActive reports whether the alert is snoozed with a wake time after now.
func (a *Alert) SnoozeActive(now time.Time) bool {
	return a.State == AlertSnoozed && a.SnoozedUntil != nil && a.SnoozedUntil.After(now)
}

// AlertPayload is what an evaluation hands to the presentation layer when an
// alert should be shown.
type AlertPayload struct {
	Alert           *Alert         `json:"alert"`
	CriticalItems   []CriticalItem `json:"critical_items"`
	ShouldPlaySound bool           `json:"should_play_sound"`
}

// Presentation is the view a browser tab renders for its alert popup.
// SoundSeq increases every time the engine asks for the audio cue.
type Presentation struct {
	SessionID     string         `json:"session_id"`
	UserID        string         `json:"user_id"`
	Status        string         `json:"status"`
	ActiveAlert   *Alert         `json:"active_alert,omitempty"`
	CriticalItems []CriticalItem `json:"critical_items"`
	PopupVisible  bool           `json:"popup_visible"`
	SoundSeq      uint64         `json:"sound_seq"`
	LastCheckAt   *time.Time     `json:"last_check_at,omitempty"`
}
