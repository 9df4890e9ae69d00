package main

import "errors"

// KnownMetrics is the set of metric names exported by mi-caja plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"micaja_http_request_duration_seconds": true,
	"micaja_http_requests_total":           true,

	// Health metrics.
	"micaja_healthz_up": true,
	"micaja_readyz_up":  true,

	// Alert engine metrics.
	"micaja_alert_evaluations_total":      true,
	"micaja_alert_checks_debounced_total": true,
	"micaja_alert_check_duration_seconds": true,
	"micaja_alert_check_errors_total":     true,
	"micaja_alerts_presented_total":       true,
	"micaja_alert_snoozes_total":          true,
	"micaja_critical_items":               true,

	// Sound and notification metrics.
	"micaja_sound_cues_total":              true,
	"micaja_notification_duration_seconds": true,
	"micaja_notifications_skipped_total":   true,
	"micaja_notification_failures_total":   true,

	// Session and cache metrics.
	"micaja_sessions_active":       true,
	"micaja_sessions_reaped_total": true,
	"micaja_cache_errors_total":    true,

	// Recording rules.
	"micaja:http_requests:rate5m":         true,
	"micaja:http_errors:rate5m":           true,
	"micaja:alert_evaluations:rate5m":     true,
	"micaja:alert_check_errors:rate5m":    true,
	"micaja:alert_check_duration:p95_5m":  true,
	"micaja:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
