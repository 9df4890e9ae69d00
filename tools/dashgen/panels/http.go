package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the HTTP request rate.
func RequestRate() *timeseries.PanelBuilder {
	return TimeSeries("Request Rate", "HTTP requests per second", "reqps").
		WithTarget(PromQuery(`micaja:http_requests:rate5m`, "req/s", "A"))
}

// RequestsByRoute returns a timeseries panel breaking the request rate down
// by route template.
func RequestsByRoute() *timeseries.PanelBuilder {
	return TimeSeries("Requests by Route", "HTTP requests per second per route template", "reqps").
		WithTarget(PromQuery(
			`sum by (path) (rate(micaja_http_requests_total`+Selector()+`[5m]))`,
			"{{path}}", "A",
		))
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// HTTP request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	b := TimeSeries("Latency Percentiles", "HTTP request duration percentiles", "s")
	for i, q := range []string{"0.50", "0.95", "0.99"} {
		expr := fmt.Sprintf(
			`histogram_quantile(%s, sum(rate(micaja_http_request_duration_seconds_bucket%s[5m])) by (le))`,
			q, Selector(),
		)
		b.WithTarget(PromQuery(expr, "p"+q[2:], string(rune('A'+i))))
	}
	return b
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Error Rate %").
		Description("HTTP 5xx error rate as percentage of total requests").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`micaja:http_errors:rate5m / micaja:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
