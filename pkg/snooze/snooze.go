// Package snooze computes absolute wake times for snoozed stock alerts.
package snooze

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies how long an alert stays quiet after the user snoozes it.
type Kind string

// Snooze kinds accepted by WakeTime.
const (
	Short    Kind = "short"
	Medium   Kind = "medium"
	Tomorrow Kind = "tomorrow"
)

const (
	shortDuration  = 15 * time.Minute
	mediumDuration = time.Hour

	// tomorrowHour is the wall-clock hour a "tomorrow" snooze wakes at.
	tomorrowHour = 9
)

// ErrInvalidKind is returned for any kind other than short, medium or tomorrow.
var ErrInvalidKind = errors.New("invalid snooze kind")

// Kinds returns every recognized kind, shortest first.
func Kinds() []Kind {
	return []Kind{Short, Medium, Tomorrow}
}

// Valid reports whether k is a recognized kind.
func (k Kind) Valid() bool {
	switch k {
	case Short, Medium, Tomorrow:
		return true
	default:
		return false
	}
}

// ParseKind converts a raw string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// WakeTime returns the absolute time at which an alert snoozed with kind at
// now should surface again.
//
// Tomorrow is the next calendar day at 09:00:00 in now's location, not now+24h,
// so snoozing at 08:00 and at 23:00 both wake at 09:00 the following day.
func WakeTime(kind Kind, now time.Time) (time.Time, error) {
	switch kind {
	case Short:
		return now.Add(shortDuration), nil
	case Medium:
		return now.Add(mediumDuration), nil
	case Tomorrow:
		y, m, d := now.Date()
		return time.Date(y, m, d+1, tomorrowHour, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}
