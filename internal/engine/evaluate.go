package engine

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/mi-caja/internal/metrics"
	"github.com/donaldgifford/mi-caja/pkg/stock"
	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

// AlertGateway is the subset of Gateway the evaluation service drives.
type AlertGateway interface {
	GetActive(ctx context.Context, userID string) (*domain.Alert, error)
	Upsert(ctx context.Context, userID string, items []domain.CriticalItem) (*domain.Alert, error)
	Deactivate(ctx context.Context, alertID string) error
	RefreshItems(ctx context.Context, alertID string, items []domain.CriticalItem) error
}

// Service decides, from a stock snapshot, whether a user should see a
// critical-stock alert right now.
type Service struct {
	gateway AlertGateway
	clock   clockwork.Clock
	log     *slog.Logger
	tracer  trace.Tracer
}

// NewService creates a Service over the given gateway.
func NewService(gw AlertGateway, opts ...ServiceOption) *Service {
	s := &Service{
		gateway: gw,
		clock:   clockwork.NewRealClock(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithServiceLogger sets a custom logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = l
	}
}

// WithServiceClock sets the clock used to judge snooze expiry.
func WithServiceClock(c clockwork.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = c
	}
}

// WithServiceTracerProvider sets where evaluation spans are sent. The global
// provider is used otherwise.
func WithServiceTracerProvider(tp trace.TracerProvider) ServiceOption {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// Evaluate classifies the snapshot and reconciles the user's persisted alert
// with it. A nil payload means there is nothing to show this cycle.
//
// The fetch and the following write are not atomic. Two evaluations racing
// for the same user may both insert; the lookup returns the newest row and
// the next pass settles on it.
func (s *Service) Evaluate(
	ctx context.Context,
	userID string,
	snapshot []domain.StockRecord,
) (*domain.AlertPayload, error) {
	ctx, span := s.tracer.Start(ctx, "stock_alert.evaluate",
		trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	items := stock.Classify(snapshot)
	span.SetAttributes(attribute.Int("critical_items", len(items)))

	existing, err := s.gateway.GetActive(ctx, userID)
	if err != nil {
		failed(span, err)
		return nil, err
	}

	if len(items) == 0 {
		if existing == nil {
			outcome(span, metrics.OutcomeClear)
			return nil, nil
		}
		if err := s.gateway.Deactivate(ctx, existing.ID); err != nil {
			failed(span, err)
			return nil, err
		}
		s.log.Info("stock recovered", "user_id", userID, "alert_id", existing.ID)
		outcome(span, metrics.OutcomeRecovered)
		return nil, nil
	}

	metrics.CriticalItemsPerAlert.Observe(float64(len(items)))

	if existing != nil && existing.SnoozeActive(s.clock.Now()) {
		// Keep the stored items fresh without surfacing the popup.
		if err := s.gateway.RefreshItems(ctx, existing.ID, items); err != nil {
			s.log.Warn("refreshing snoozed alert items",
				"user_id", userID,
				"alert_id", existing.ID,
				"error", err,
			)
		}
		outcome(span, metrics.OutcomeSnoozed)
		return nil, nil
	}

	a, err := s.gateway.Upsert(ctx, userID, items)
	if err != nil {
		failed(span, err)
		return nil, err
	}

	result := metrics.OutcomeReactivated
	if existing == nil {
		result = metrics.OutcomeCreated
	}
	outcome(span, result)

	return &domain.AlertPayload{
		Alert:           a,
		CriticalItems:   items,
		ShouldPlaySound: true,
	}, nil
}

// outcome counts the evaluation result and tags the span with it.
func outcome(span trace.Span, result string) {
	metrics.AlertEvaluationsTotal.WithLabelValues(result).Inc()
	span.SetAttributes(attribute.String("outcome", result))
}

func failed(span trace.Span, err error) {
	outcome(span, metrics.OutcomeError)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
