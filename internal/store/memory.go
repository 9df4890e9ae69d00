package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// MemoryStore implements Store in process memory. Data does not survive a
// restart; it backs the "memory" driver and the engine tests.
type MemoryStore struct {
	mu     sync.RWMutex
	alerts []*domain.Alert // insertion order
	stock  map[string]map[string]domain.StockRecord
	sound  map[string]bool
	now    func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stock: make(map[string]map[string]domain.StockRecord),
		sound: make(map[string]bool),
		now:   time.Now,
	}
}

// Ping always succeeds.
func (*MemoryStore) Ping(context.Context) error { return nil }

// Migrate is a no-op.
func (*MemoryStore) Migrate(context.Context) error { return nil }

// GetActiveAlert returns the user's newest non-deactivated alert, or nil.
func (s *MemoryStore) GetActiveAlert(_ context.Context, userID string) (*domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.alerts) - 1; i >= 0; i-- {
		a := s.alerts[i]
		if a.UserID == userID && a.State != domain.AlertDeactivated {
			return cloneAlert(a), nil
		}
	}
	return nil, nil
}

// GetAlert retrieves an alert by id.
func (s *MemoryStore) GetAlert(_ context.Context, id string) (*domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.find(id)
	if a == nil {
		return nil, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return cloneAlert(a), nil
}

// CreateAlert inserts a new active alert with a zero snooze count.
func (s *MemoryStore) CreateAlert(_ context.Context, a *domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a.ID = uuid.NewString()
	a.State = domain.AlertActive
	a.SnoozeCount = 0
	a.SnoozedUntil = nil
	a.SnoozeKind = nil
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.CriticalItems == nil {
		a.CriticalItems = []domain.CriticalItem{}
	}

	s.alerts = append(s.alerts, cloneAlert(a))
	return nil
}

// ReactivateAlert refreshes an alert's items and returns it to active,
// clearing any snooze.
func (s *MemoryStore) ReactivateAlert(
	_ context.Context,
	id string,
	items []domain.CriticalItem,
	notifiedAt time.Time,
) error {
	return s.update(id, "reactivating alert", func(a *domain.Alert) {
		a.State = domain.AlertActive
		a.CriticalItems = cloneItems(items)
		a.LastNotifiedAt = notifiedAt
		a.SnoozedUntil = nil
		a.SnoozeKind = nil
	})
}

// UpdateAlertItems replaces an alert's embedded critical items only.
func (s *MemoryStore) UpdateAlertItems(_ context.Context, id string, items []domain.CriticalItem) error {
	return s.update(id, "updating alert items", func(a *domain.Alert) {
		a.CriticalItems = cloneItems(items)
	})
}

// SnoozeAlert marks an open alert snoozed until the given time.
func (s *MemoryStore) SnoozeAlert(
	_ context.Context,
	id string,
	until time.Time,
	kind snooze.Kind,
	count int,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(id)
	if a == nil || a.State == domain.AlertDeactivated {
		return fmt.Errorf("snoozing alert %s: %w", id, ErrNotFound)
	}
	a.State = domain.AlertSnoozed
	a.SnoozedUntil = &until
	a.SnoozeKind = &kind
	a.SnoozeCount = count
	a.UpdatedAt = s.now()
	return nil
}

// DeactivateAlert marks an alert deactivated.
func (s *MemoryStore) DeactivateAlert(_ context.Context, id string) error {
	return s.update(id, "deactivating alert", func(a *domain.Alert) {
		a.State = domain.AlertDeactivated
	})
}

// ListStock returns the user's stock snapshot ordered by name.
func (s *MemoryStore) ListStock(_ context.Context, userID string) ([]domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.StockRecord, 0, len(s.stock[userID]))
	for _, r := range s.stock[userID] {
		records = append(records, cloneRecord(r))
	}
	slices.SortFunc(records, func(a, b domain.StockRecord) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return records, nil
}

// UpsertStock inserts or updates one stock item for the user.
func (s *MemoryStore) UpsertStock(_ context.Context, userID string, r *domain.StockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.stock[userID]
	if !ok {
		items = make(map[string]domain.StockRecord)
		s.stock[userID] = items
	}
	items[r.ID] = cloneRecord(*r)
	return nil
}

// GetSoundEnabled returns the user's sound preference, defaulting to enabled.
func (s *MemoryStore) GetSoundEnabled(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enabled, ok := s.sound[userID]
	if !ok {
		return true, nil
	}
	return enabled, nil
}

// SetSoundEnabled stores the user's sound preference.
func (s *MemoryStore) SetSoundEnabled(_ context.Context, userID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sound[userID] = enabled
	return nil
}

func (s *MemoryStore) find(id string) *domain.Alert {
	for _, a := range s.alerts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *MemoryStore) update(id, op string, fn func(a *domain.Alert)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(id)
	if a == nil {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	fn(a)
	a.UpdatedAt = s.now()
	return nil
}

func cloneAlert(a *domain.Alert) *domain.Alert {
	c := *a
	c.CriticalItems = cloneItems(a.CriticalItems)
	if a.SnoozedUntil != nil {
		t := *a.SnoozedUntil
		c.SnoozedUntil = &t
	}
	if a.SnoozeKind != nil {
		k := *a.SnoozeKind
		c.SnoozeKind = &k
	}
	return &c
}

func cloneItems(items []domain.CriticalItem) []domain.CriticalItem {
	if items == nil {
		return []domain.CriticalItem{}
	}
	return slices.Clone(items)
}

func cloneRecord(r domain.StockRecord) domain.StockRecord {
	if r.AvailableQuantity != nil {
		q := *r.AvailableQuantity
		r.AvailableQuantity = &q
	}
	return r
}
