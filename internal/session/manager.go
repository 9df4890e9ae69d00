// Package session hosts one alert coordinator per open browser tab.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/donaldgifford/mi-caja/internal/engine"
	"github.com/donaldgifford/mi-caja/internal/metrics"
)

// Session lookup errors.
var (
	ErrNotFound  = errors.New("session not found")
	ErrForbidden = errors.New("session belongs to another user")
)

// CoordinatorFactory builds an idle coordinator for a new session.
type CoordinatorFactory func(sessionID, userID string) *engine.Coordinator

type entry struct {
	userID   string
	coord    *engine.Coordinator
	lastSeen time.Time
}

// Manager owns the open sessions. Sessions are independent; two tabs of the
// same user each run their own coordinator.
type Manager struct {
	factory CoordinatorFactory
	clock   clockwork.Clock
	ttl     time.Duration
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewManager creates a Manager. Sessions idle for longer than ttl are closed
// by Reap.
func NewManager(factory CoordinatorFactory, ttl time.Duration, opts ...ManagerOption) *Manager {
	m := &Manager{
		factory:  factory,
		clock:    clockwork.NewRealClock(),
		ttl:      ttl,
		log:      slog.Default(),
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// WithClock sets the clock used for idle tracking.
func WithClock(c clockwork.Clock) ManagerOption {
	return func(m *Manager) {
		m.clock = c
	}
}

// Open creates a session for the user and starts its coordinator.
func (m *Manager) Open(userID string) (string, *engine.Coordinator) {
	id := uuid.NewString()
	coord := m.factory(id, userID)

	m.mu.Lock()
	m.sessions[id] = &entry{userID: userID, coord: coord, lastSeen: m.clock.Now()}
	m.setActiveLocked()
	m.mu.Unlock()

	coord.Start()
	m.log.Info("session opened", "session_id", id, "user_id", userID)
	return id, coord
}

// Get returns the session's coordinator and marks the session as seen.
func (m *Manager) Get(id, userID string) (*engine.Coordinator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if e.userID != userID {
		return nil, ErrForbidden
	}
	e.lastSeen = m.clock.Now()
	return e.coord, nil
}

// Close stops and removes the session.
func (m *Manager) Close(id, userID string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	if e.userID != userID {
		m.mu.Unlock()
		return ErrForbidden
	}
	delete(m.sessions, id)
	m.setActiveLocked()
	m.mu.Unlock()

	e.coord.Stop()
	m.log.Info("session closed", "session_id", id, "user_id", userID)
	return nil
}

// TriggerUser runs a manual check on every session of the user and returns
// how many checks actually ran (the rest were debounced).
func (m *Manager) TriggerUser(ctx context.Context, userID string) int {
	var coords []*engine.Coordinator

	m.mu.Lock()
	for _, e := range m.sessions {
		if e.userID == userID {
			coords = append(coords, e.coord)
		}
	}
	m.mu.Unlock()

	ran := 0
	for _, c := range coords {
		if c.Trigger(ctx) {
			ran++
		}
	}
	return ran
}

// Reap closes sessions that have not been seen within the TTL and returns
// how many were closed.
func (m *Manager) Reap() int {
	now := m.clock.Now()
	var stale []*entry

	m.mu.Lock()
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.ttl {
			stale = append(stale, e)
			delete(m.sessions, id)
			m.log.Info("session expired", "session_id", id, "user_id", e.userID)
		}
	}
	m.setActiveLocked()
	m.mu.Unlock()

	for _, e := range stale {
		e.coord.Stop()
	}

	metrics.SessionsReapedTotal.Add(float64(len(stale)))
	return len(stale)
}

// CloseAll stops every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*entry)
	m.setActiveLocked()
	m.mu.Unlock()

	for _, e := range all {
		e.coord.Stop()
	}
}

// setActiveLocked publishes the session count. Callers hold m.mu so gauge
// writes land in the same order as the map changes.
func (m *Manager) setActiveLocked() {
	metrics.SessionsActive.Set(float64(len(m.sessions)))
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
