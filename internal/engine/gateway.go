package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/donaldgifford/mi-caja/internal/cache"
	"github.com/donaldgifford/mi-caja/internal/metrics"
	"github.com/donaldgifford/mi-caja/internal/store"
	"github.com/donaldgifford/mi-caja/pkg/snooze"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// Validation errors returned before any store call.
var (
	ErrMissingAlertID = errors.New("alert id is required")
	ErrMissingUserID  = errors.New("user id is required")
)

// ErrAlertDeactivated is returned when snoozing an alert that has already
// been deactivated. A deactivated alert is replaced, never reopened.
var ErrAlertDeactivated = errors.New("alert is deactivated")

// Gateway performs the alert-state operations against the row store and keeps
// the optional write-through cache in step. Evaluation only ever reads the
// store; the cache serves LastKnown.
type Gateway struct {
	store store.Store
	clock clockwork.Clock
	log   *slog.Logger

	cache       cache.Cache
	cachePrefix string
	cacheTTL    time.Duration
}

// NewGateway creates a Gateway over the given store.
func NewGateway(s store.Store, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store:       s,
		clock:       clockwork.NewRealClock(),
		log:         slog.Default(),
		cachePrefix: "micaja:stock_alert",
		cacheTTL:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GatewayOption configures the Gateway.
type GatewayOption func(*Gateway)

// WithGatewayLogger sets a custom logger.
func WithGatewayLogger(l *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		g.log = l
	}
}

// WithGatewayClock sets the clock used for notification and wake times.
func WithGatewayClock(c clockwork.Clock) GatewayOption {
	return func(g *Gateway) {
		g.clock = c
	}
}

// WithCache enables the write-through cache. Keys are prefix:user_id.
func WithCache(c cache.Cache, prefix string, ttl time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.cache = c
		if prefix != "" {
			g.cachePrefix = prefix
		}
		g.cacheTTL = ttl
	}
}

// GetActive returns the user's current non-deactivated alert, or nil if none.
func (g *Gateway) GetActive(ctx context.Context, userID string) (*domain.Alert, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	a, err := g.store.GetActiveAlert(ctx, userID)
	if err != nil {
		g.log.Error("fetching active alert", "user_id", userID, "error", err)
		return nil, fmt.Errorf("fetching active alert for %s: %w", userID, err)
	}
	return a, nil
}

// Upsert refreshes and reactivates the user's open alert, or creates a new
// active alert with a zero snooze count when none exists. It returns the
// resulting record.
func (g *Gateway) Upsert(ctx context.Context, userID string, items []domain.CriticalItem) (*domain.Alert, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	existing, err := g.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := g.clock.Now()
	items = slices.Clone(items)

	if existing == nil {
		a := &domain.Alert{
			UserID:         userID,
			State:          domain.AlertActive,
			CriticalItems:  items,
			LastNotifiedAt: now,
		}
		if err := g.store.CreateAlert(ctx, a); err != nil {
			g.log.Error("creating alert", "user_id", userID, "error", err)
			return nil, fmt.Errorf("creating alert for %s: %w", userID, err)
		}
		g.log.Info("stock alert created",
			"user_id", userID,
			"alert_id", a.ID,
			"critical_items", len(items),
		)
		g.writeThrough(ctx, a)
		return a, nil
	}

	if err := g.store.ReactivateAlert(ctx, existing.ID, items, now); err != nil {
		g.log.Error("reactivating alert", "alert_id", existing.ID, "error", err)
		return nil, fmt.Errorf("reactivating alert %s: %w", existing.ID, err)
	}

	existing.State = domain.AlertActive
	existing.CriticalItems = items
	existing.LastNotifiedAt = now
	existing.SnoozedUntil = nil
	existing.SnoozeKind = nil
	existing.UpdatedAt = now

	g.writeThrough(ctx, existing)
	return existing, nil
}

// Snooze reads the alert's snooze count, computes the wake time for kind, and
// marks the alert snoozed with the count incremented. Deactivated alerts are
// rejected with ErrAlertDeactivated.
func (g *Gateway) Snooze(ctx context.Context, alertID string, kind snooze.Kind) (*domain.Alert, error) {
	if alertID == "" {
		return nil, ErrMissingAlertID
	}
	now := g.clock.Now()
	until, err := snooze.WakeTime(kind, now)
	if err != nil {
		return nil, err
	}

	a, err := g.store.GetAlert(ctx, alertID)
	if err != nil {
		g.log.Error("reading alert for snooze", "alert_id", alertID, "error", err)
		return nil, fmt.Errorf("reading alert %s: %w", alertID, err)
	}
	if a.State == domain.AlertDeactivated {
		return nil, fmt.Errorf("snoozing alert %s: %w", alertID, ErrAlertDeactivated)
	}

	count := a.SnoozeCount + 1
	if err := g.store.SnoozeAlert(ctx, alertID, until, kind, count); err != nil {
		g.log.Error("snoozing alert", "alert_id", alertID, "error", err)
		return nil, fmt.Errorf("snoozing alert %s: %w", alertID, err)
	}

	metrics.AlertSnoozesTotal.WithLabelValues(string(kind)).Inc()
	g.log.Info("stock alert snoozed",
		"user_id", a.UserID,
		"alert_id", alertID,
		"kind", kind,
		"until", until,
		"snooze_count", count,
	)

	a.State = domain.AlertSnoozed
	a.SnoozedUntil = &until
	a.SnoozeKind = &kind
	a.SnoozeCount = count
	a.UpdatedAt = now

	g.writeThrough(ctx, a)
	return a, nil
}

// Deactivate marks the alert deactivated and evicts it from the cache.
func (g *Gateway) Deactivate(ctx context.Context, alertID string) error {
	if alertID == "" {
		return ErrMissingAlertID
	}

	if err := g.store.DeactivateAlert(ctx, alertID); err != nil {
		g.log.Error("deactivating alert", "alert_id", alertID, "error", err)
		return fmt.Errorf("deactivating alert %s: %w", alertID, err)
	}

	g.log.Info("stock alert deactivated", "alert_id", alertID)
	g.evict(ctx, alertID)
	return nil
}

// RefreshItems replaces the alert's embedded critical items without touching
// its state or snooze fields.
func (g *Gateway) RefreshItems(ctx context.Context, alertID string, items []domain.CriticalItem) error {
	if alertID == "" {
		return ErrMissingAlertID
	}

	if err := g.store.UpdateAlertItems(ctx, alertID, slices.Clone(items)); err != nil {
		g.log.Error("refreshing alert items", "alert_id", alertID, "error", err)
		return fmt.Errorf("refreshing alert %s: %w", alertID, err)
	}
	return nil
}

// LastKnown returns the cached copy of the user's alert. It returns
// cache.ErrCacheMiss when no cache is configured or nothing is cached.
func (g *Gateway) LastKnown(ctx context.Context, userID string) (*domain.Alert, error) {
	if g.cache == nil {
		return nil, cache.ErrCacheMiss
	}

	data, err := g.cache.Get(ctx, cache.Key(g.cachePrefix, userID))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
		}
		return nil, err
	}

	var a domain.Alert
	if err := json.Unmarshal(data, &a); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("decoding cached alert: %w", err)
	}
	return &a, nil
}

func (g *Gateway) writeThrough(ctx context.Context, a *domain.Alert) {
	if g.cache == nil {
		return
	}

	data, err := json.Marshal(a)
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("encode").Inc()
		g.log.Warn("encoding alert for cache", "alert_id", a.ID, "error", err)
		return
	}

	if err := g.cache.Set(ctx, cache.Key(g.cachePrefix, a.UserID), data, g.cacheTTL); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
		g.log.Warn("writing alert to cache", "alert_id", a.ID, "error", err)
	}
}

func (g *Gateway) evict(ctx context.Context, alertID string) {
	if g.cache == nil {
		return
	}

	a, err := g.store.GetAlert(ctx, alertID)
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("delete").Inc()
		g.log.Warn("resolving alert owner for cache eviction", "alert_id", alertID, "error", err)
		return
	}

	if err := g.cache.Delete(ctx, cache.Key(g.cachePrefix, a.UserID)); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("delete").Inc()
		g.log.Warn("evicting alert from cache", "alert_id", alertID, "error", err)
	}
}
