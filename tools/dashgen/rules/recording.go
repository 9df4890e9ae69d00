package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "micaja-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "micaja-recording",
					Rules: []Rule{
						{
							Record: "micaja:http_requests:rate5m",
							Expr:   `sum(rate(micaja_http_requests_total[5m]))`,
						},
						{
							Record: "micaja:http_errors:rate5m",
							Expr:   `sum(rate(micaja_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "micaja:alert_evaluations:rate5m",
							Expr:   `sum by (outcome) (rate(micaja_alert_evaluations_total[5m]))`,
						},
						{
							Record: "micaja:alert_check_errors:rate5m",
							Expr:   `sum(rate(micaja_alert_check_errors_total[5m]))`,
						},
						{
							Record: "micaja:alert_check_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(micaja_alert_check_duration_seconds_bucket[5m])) by (le))`,
						},
						{
							Record: "micaja:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(micaja_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
