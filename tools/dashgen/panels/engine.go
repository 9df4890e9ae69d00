package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// EvaluationOutcomes returns a timeseries panel showing alert evaluations
// per second split by outcome.
func EvaluationOutcomes() *timeseries.PanelBuilder {
	return TimeSeries("Evaluations by Outcome", "Alert evaluations per second by outcome", "ops").
		WithTarget(PromQuery(`micaja:alert_evaluations:rate5m`, "{{outcome}}", "A"))
}

// CheckDuration returns a timeseries panel showing the p95 duration of a
// full stock check.
func CheckDuration() *timeseries.PanelBuilder {
	return TimeSeries("Check Duration (p95)", "95th percentile stock check duration", "s").
		WithTarget(PromQuery(`micaja:alert_check_duration:p95_5m`, "p95", "A"))
}

// DebouncedChecks returns a timeseries panel comparing debounced triggers
// with failed checks.
func DebouncedChecks() *timeseries.PanelBuilder {
	return TimeSeries("Debounced and Failed Checks", "Triggers dropped by the debounce window and checks that failed", "ops").
		WithTarget(PromQuery(
			`sum(rate(micaja_alert_checks_debounced_total`+Selector()+`[5m]))`,
			"debounced", "A",
		)).
		WithTarget(PromQuery(`micaja:alert_check_errors:rate5m`, "errors", "B"))
}

// SnoozesByKind returns a timeseries panel showing snoozes per hour split by
// snooze kind.
func SnoozesByKind() *timeseries.PanelBuilder {
	return TimeSeries("Snoozes by Kind", "Alert snoozes per hour by kind", "short").
		WithTarget(PromQuery(
			`sum by (kind) (increase(micaja_alert_snoozes_total`+Selector()+`[1h]))`,
			"{{kind}}", "A",
		))
}

// CriticalItems returns a timeseries panel showing the median and p95 number
// of critical items per alerting evaluation.
func CriticalItems() *timeseries.PanelBuilder {
	return TimeSeries("Critical Items per Alert", "Critical items found by evaluations that raised an alert", "short").
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(micaja_critical_items_bucket`+Selector()+`[15m])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(micaja_critical_items_bucket`+Selector()+`[15m])) by (le))`,
			"p95", "B",
		))
}

// PresentedToday returns a stat panel showing alerts presented in the last
// 24 hours.
func PresentedToday() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Alerts Presented (24h)").
		Description("Popups shown to users in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(increase(micaja_alerts_presented_total`+Selector()+`[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds())
}
