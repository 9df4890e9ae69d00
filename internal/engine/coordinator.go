package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/mi-caja/internal/metrics"
	"github.com/donaldgifford/mi-caja/pkg/snooze"
	"github.com/donaldgifford/mi-caja/pkg/stock"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// Default coordinator timings.
const (
	DefaultInitialDelay = 3 * time.Second
	DefaultInterval     = 5 * time.Minute
	DefaultDebounce     = 10 * time.Second
	DefaultCheckTimeout = 30 * time.Second
)

// Coordinator lifecycle states.
const (
	StatusIdle    = "idle"
	StatusRunning = "running"
	StatusPaused  = "paused"
	StatusStopped = "stopped"
)

// tracerName identifies spans emitted by this package.
const tracerName = "github.com/donaldgifford/mi-caja/internal/engine"

// ErrNoActiveAlert is returned by Snooze when nothing is being presented.
var ErrNoActiveAlert = errors.New("no active alert to snooze")

// StockSource reads a user's current stock snapshot.
type StockSource interface {
	ListStock(ctx context.Context, userID string) ([]domain.StockRecord, error)
}

// Evaluator turns a stock snapshot into an alert payload, or nil.
type Evaluator interface {
	Evaluate(ctx context.Context, userID string, snapshot []domain.StockRecord) (*domain.AlertPayload, error)
}

// Snoozer persists a user's snooze of an alert.
type Snoozer interface {
	Snooze(ctx context.Context, alertID string, kind snooze.Kind) (*domain.Alert, error)
}

// SoundPlayer reports whether the audio cue should play for the items. It
// must not fail; playback problems are its own concern.
type SoundPlayer interface {
	Play(ctx context.Context, userID string, items []domain.CriticalItem) bool
}

// Timings configures the coordinator's timers. Zero values use the defaults.
type Timings struct {
	InitialDelay time.Duration
	Interval     time.Duration
	Debounce     time.Duration
	CheckTimeout time.Duration
}

func (t Timings) withDefaults() Timings {
	if t.InitialDelay <= 0 {
		t.InitialDelay = DefaultInitialDelay
	}
	if t.Interval <= 0 {
		t.Interval = DefaultInterval
	}
	if t.Debounce <= 0 {
		t.Debounce = DefaultDebounce
	}
	if t.CheckTimeout <= 0 {
		t.CheckTimeout = DefaultCheckTimeout
	}
	return t
}

type timerKind int

const (
	timerInitial timerKind = iota
	timerPeriodic
	timerRecheck
)

// Coordinator drives the periodic stock check for one session and holds the
// popup state that session renders.
//
// All fields below mu are guarded by it. Collaborator calls run outside the
// lock. Every cleared timer handle is set to nil, and gen is bumped whenever
// the timer set is torn down so callbacks that already fired are dropped.
type Coordinator struct {
	sessionID string
	userID    string
	stock     StockSource
	evaluator Evaluator
	snoozer   Snoozer
	sound     SoundPlayer
	clock     clockwork.Clock
	log       *slog.Logger
	tracer    trace.Tracer
	timings   Timings

	baseCtx context.Context
	cancel  context.CancelFunc

	mu          sync.Mutex
	status      string
	gen         uint64
	lastCheck   time.Time
	initial     clockwork.Timer
	periodic    clockwork.Timer
	recheck     clockwork.Timer
	activeAlert *domain.Alert
	items       []domain.CriticalItem
	popup       bool
	soundSeq    uint64
}

// NewCoordinator creates an idle Coordinator for the user.
func NewCoordinator(
	userID string,
	src StockSource,
	ev Evaluator,
	sn Snoozer,
	opts ...CoordinatorOption,
) *Coordinator {
	c := &Coordinator{
		userID:    userID,
		stock:     src,
		evaluator: ev,
		snoozer:   sn,
		clock:     clockwork.NewRealClock(),
		log:       slog.Default(),
		status:    StatusIdle,
		items:     []domain.CriticalItem{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	c.timings = c.timings.withDefaults()
	c.log = c.log.With("user_id", userID)
	if c.sessionID != "" {
		c.log = c.log.With("session_id", c.sessionID)
	}
	c.baseCtx, c.cancel = context.WithCancel(context.Background())
	return c
}

// CoordinatorOption configures the Coordinator.
type CoordinatorOption func(*Coordinator)

// WithCoordinatorLogger sets a custom logger.
func WithCoordinatorLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.log = l
	}
}

// WithCoordinatorClock sets the clock used for timers and debounce.
func WithCoordinatorClock(clk clockwork.Clock) CoordinatorOption {
	return func(c *Coordinator) {
		c.clock = clk
	}
}

// WithSoundPlayer sets the sound cue. Without one every requested cue counts
// as played.
func WithSoundPlayer(p SoundPlayer) CoordinatorOption {
	return func(c *Coordinator) {
		c.sound = p
	}
}

// WithTimings overrides the timer durations.
func WithTimings(t Timings) CoordinatorOption {
	return func(c *Coordinator) {
		c.timings = t
	}
}

// WithCoordinatorTracerProvider sets where check spans are sent. The global
// provider is used otherwise.
func WithCoordinatorTracerProvider(tp trace.TracerProvider) CoordinatorOption {
	return func(c *Coordinator) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// WithSessionID tags the coordinator with the session it serves.
func WithSessionID(id string) CoordinatorOption {
	return func(c *Coordinator) {
		c.sessionID = id
	}
}

// Start schedules the first check after the initial delay and the recurring
// check every interval. Starting a running or stopped coordinator does nothing.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusRunning || c.status == StatusStopped {
		return
	}

	c.gen++
	g := c.gen
	c.initial = c.clock.AfterFunc(c.timings.InitialDelay, func() { c.fire(g, timerInitial) })
	c.periodic = c.clock.AfterFunc(c.timings.Interval, func() { c.fire(g, timerPeriodic) })
	c.status = StatusRunning

	c.log.Debug("coordinator started",
		"initial_delay", c.timings.InitialDelay,
		"interval", c.timings.Interval,
	)
}

// Pause clears every pending timer and keeps the presented alert. Pausing a
// coordinator that is not running does nothing.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusRunning {
		return
	}

	c.clearTimersLocked()
	c.status = StatusPaused
	c.log.Debug("coordinator paused")
}

// Resume restarts the schedule from the initial delay. Resuming a running
// coordinator does nothing.
func (c *Coordinator) Resume() {
	c.Start()
}

// OnVisibilityChange pauses while the tab is hidden and resumes when it is
// shown again.
func (c *Coordinator) OnVisibilityChange(hidden bool) {
	if hidden {
		c.Pause()
		return
	}
	c.Resume()
}

// Trigger runs a check now, subject to the debounce window, without forcing
// the sound cue. It reports whether the check ran.
func (c *Coordinator) Trigger(ctx context.Context) bool {
	return c.check(ctx, false)
}

// Dismiss hides the popup without snoozing and schedules a one-shot re-check
// after the regular interval so the alert can reappear on schedule.
func (c *Coordinator) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.popup = false

	if c.status != StatusRunning {
		return
	}

	if c.recheck != nil {
		c.recheck.Stop()
		c.recheck = nil
	}
	g := c.gen
	c.recheck = c.clock.AfterFunc(c.timings.Interval, func() { c.fire(g, timerRecheck) })
}

// Snooze hides the popup and persists the snooze of the presented alert. The
// periodic timer keeps running; later checks stay silent until the wake time.
func (c *Coordinator) Snooze(ctx context.Context, kind snooze.Kind) (*domain.Alert, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", snooze.ErrInvalidKind, string(kind))
	}

	c.mu.Lock()
	if c.activeAlert == nil {
		c.mu.Unlock()
		return nil, ErrNoActiveAlert
	}
	alertID := c.activeAlert.ID
	c.popup = false
	c.mu.Unlock()

	updated, err := c.snoozer.Snooze(ctx, alertID, kind)
	if err != nil {
		c.log.Error("snoozing alert", "alert_id", alertID, "kind", kind, "error", err)
		return nil, err
	}

	c.mu.Lock()
	if c.activeAlert != nil && c.activeAlert.ID == updated.ID {
		c.activeAlert = updated
	}
	c.mu.Unlock()

	return updated, nil
}

// Stop clears all timers and cancels in-flight checks. It is idempotent.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusStopped {
		return
	}

	c.clearTimersLocked()
	c.status = StatusStopped
	c.cancel()
	c.log.Debug("coordinator stopped")
}

// Status returns the lifecycle state.
func (c *Coordinator) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Snapshot returns the presentation view.
func (c *Coordinator) Snapshot() domain.Presentation {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := domain.Presentation{
		SessionID:     c.sessionID,
		UserID:        c.userID,
		Status:        c.status,
		CriticalItems: slices.Clone(c.items),
		PopupVisible:  c.popup,
		SoundSeq:      c.soundSeq,
	}
	if c.activeAlert != nil {
		a := *c.activeAlert
		p.ActiveAlert = &a
	}
	if !c.lastCheck.IsZero() {
		t := c.lastCheck
		p.LastCheckAt = &t
	}
	return p
}

func (c *Coordinator) clearTimersLocked() {
	for _, t := range []*clockwork.Timer{&c.initial, &c.periodic, &c.recheck} {
		if *t != nil {
			(*t).Stop()
			*t = nil
		}
	}
	c.gen++
}

func (c *Coordinator) fire(g uint64, kind timerKind) {
	c.mu.Lock()
	if g != c.gen || c.status != StatusRunning {
		c.mu.Unlock()
		return
	}
	switch kind {
	case timerInitial:
		c.initial = nil
	case timerPeriodic:
		c.periodic = c.clock.AfterFunc(c.timings.Interval, func() { c.fire(g, timerPeriodic) })
	case timerRecheck:
		c.recheck = nil
	}
	c.mu.Unlock()

	c.check(c.baseCtx, true)
}

// check runs one evaluate-and-present pass. Errors are logged and leave the
// presented state untouched.
func (c *Coordinator) check(ctx context.Context, forceSound bool) bool {
	c.mu.Lock()
	if c.status == StatusStopped {
		c.mu.Unlock()
		return false
	}
	now := c.clock.Now()
	if !c.lastCheck.IsZero() && now.Sub(c.lastCheck) < c.timings.Debounce {
		c.mu.Unlock()
		metrics.AlertChecksDebouncedTotal.Inc()
		return false
	}
	c.lastCheck = now
	c.mu.Unlock()

	start := time.Now()
	defer func() {
		metrics.AlertCheckDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timings.CheckTimeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "stock_alert.check", trace.WithAttributes(
		attribute.String("user_id", c.userID),
		attribute.String("session_id", c.sessionID),
		attribute.Bool("force_sound", forceSound),
	))
	defer span.End()

	snapshot, err := c.stock.ListStock(ctx, c.userID)
	if err != nil {
		c.checkFailed(span, "reading stock snapshot", err)
		return true
	}
	span.SetAttributes(attribute.Int("stock_records", len(snapshot)))

	payload, err := c.evaluator.Evaluate(ctx, c.userID, snapshot)
	if err != nil {
		c.checkFailed(span, "evaluating stock alert", err)
		return true
	}

	span.SetAttributes(attribute.Bool("presented", payload != nil))
	switch {
	case payload != nil:
		c.present(ctx, payload, forceSound)
	case len(stock.Classify(snapshot)) == 0:
		// Recovered: the stored alert is deactivated, so nothing is left to show or snooze.
		c.clearPresentation()
	}
	return true
}

func (c *Coordinator) clearPresentation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeAlert == nil && !c.popup {
		return
	}
	c.log.Info("stock alert cleared")
	c.activeAlert = nil
	c.items = []domain.CriticalItem{}
	c.popup = false
}

func (c *Coordinator) checkFailed(span trace.Span, msg string, err error) {
	metrics.AlertCheckErrorsTotal.Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	c.log.Error(msg, "error", err)
}

func (c *Coordinator) present(ctx context.Context, payload *domain.AlertPayload, forceSound bool) {
	c.mu.Lock()
	if c.status == StatusStopped {
		c.mu.Unlock()
		return
	}
	c.activeAlert = payload.Alert
	c.items = slices.Clone(payload.CriticalItems)
	if c.items == nil {
		c.items = []domain.CriticalItem{}
	}
	c.popup = true
	c.mu.Unlock()

	metrics.AlertsPresentedTotal.Inc()
	c.log.Info("stock alert presented", "critical_items", len(payload.CriticalItems))

	if !payload.ShouldPlaySound && !forceSound {
		return
	}

	if c.sound != nil && !c.sound.Play(ctx, c.userID, payload.CriticalItems) {
		return
	}

	c.mu.Lock()
	c.soundSeq++
	c.mu.Unlock()
}
