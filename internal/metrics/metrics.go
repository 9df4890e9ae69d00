// Package metrics defines Prometheus metrics for mi-caja.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "micaja"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz check succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz check succeeded, 0 otherwise.",
	})
)

// Evaluation outcome label values.
const (
	OutcomeCreated     = "created"
	OutcomeReactivated = "reactivated"
	OutcomeSnoozed     = "snoozed"
	OutcomeRecovered   = "recovered"
	OutcomeClear       = "clear"
	OutcomeError       = "error"
)

// Alert engine metrics.
var (
	AlertEvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_evaluations_total",
		Help:      "Stock alert evaluations by outcome.",
	}, []string{"outcome"})

	AlertChecksDebouncedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_checks_debounced_total",
		Help:      "Check requests skipped because a check ran within the debounce window.",
	})

	AlertCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "alert_check_duration_seconds",
		Help:      "Duration of stock alert check passes in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	AlertCheckErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_check_errors_total",
		Help:      "Check passes that failed on a backend error.",
	})

	AlertsPresentedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_presented_total",
		Help:      "Times a stock alert popup was shown.",
	})

	AlertSnoozesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_snoozes_total",
		Help:      "Stock alert snoozes by kind.",
	}, []string{"kind"})

	CriticalItemsPerAlert = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "critical_items",
		Help:      "Number of critical items per evaluation that found critical stock.",
		Buckets:   prometheus.LinearBuckets(1, 5, 10),
	})
)

// Sound cue metrics.
var (
	SoundCuesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sound_cues_total",
		Help:      "Sound cues requested for presented alerts.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification webhook calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_skipped_total",
		Help:      "Notifications dropped by the webhook rate limiter.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)

// Session and cache metrics.
var (
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Open alert coordinator sessions.",
	})

	SessionsReapedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_reaped_total",
		Help:      "Sessions closed by the idle reaper.",
	})

	CacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Write-through cache failures by operation.",
	}, []string{"op"})
)
