package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SoundCues returns a timeseries panel comparing sound cues played with
// notifications skipped by the minimum gap.
func SoundCues() *timeseries.PanelBuilder {
	return TimeSeries("Sound Cues", "Chimes played and webhook notifications skipped per second", "ops").
		WithTarget(PromQuery(`sum(rate(micaja_sound_cues_total`+Selector()+`[5m]))`, "played", "A")).
		WithTarget(PromQuery(`sum(rate(micaja_notifications_skipped_total`+Selector()+`[5m]))`, "skipped", "B"))
}

// NotificationLatency returns a timeseries panel showing the p95 notification
// webhook latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notification Latency (p95)").
		Description("95th percentile Discord webhook latency").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`micaja:notification_duration:p95_5m`, "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NotificationFailures returns a stat panel showing notification failures
// in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return failureStat(
		"Notification Failures (24h)",
		"Failed alert notification deliveries in the last 24 hours",
		"micaja_notification_failures_total",
	)
}

// CacheErrors returns a stat panel showing alert cache errors in the past
// 24 hours.
func CacheErrors() *stat.PanelBuilder {
	return failureStat(
		"Cache Errors (24h)",
		"Alert cache operations that failed and fell through to the store",
		"micaja_cache_errors_total",
	)
}

// SessionsReaped returns a timeseries panel showing idle sessions closed by
// the reaper.
func SessionsReaped() *timeseries.PanelBuilder {
	return TimeSeries("Sessions Reaped", "Idle sessions closed per hour", "short").
		WithTarget(PromQuery(`sum(increase(micaja_sessions_reaped_total`+Selector()+`[1h]))`, "reaped", "A"))
}

func failureStat(title, description, metric string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(increase(`+metric+Selector()+`[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
