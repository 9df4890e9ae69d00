package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// mi-caja operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "micaja-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "micaja-alerts",
					Rules: []Rule{
						{
							Alert: "MiCajaDown",
							Expr:  `absent(up{job="mi-caja"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Mi Caja is down",
								"description": "The mi-caja job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "MiCajaReadinessDown",
							Expr:  `micaja_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Mi Caja readiness check is failing",
								"description": "The readiness check has been reporting not-ready for more than 2 minutes. Stock checks cannot reach the database.",
							},
						},
						{
							Alert: "MiCajaHighErrorRate",
							Expr:  `micaja:http_errors:rate5m / micaja:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Mi Caja",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "MiCajaCheckErrors",
							Expr:  `micaja:alert_check_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Stock checks are failing",
								"description": "Low-stock checks have been failing for more than 5 minutes. Users will not see new alerts.",
							},
						},
						{
							Alert: "MiCajaNotificationFailures",
							Expr:  `increase(micaja_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more sound cue notifications (Discord webhooks) have failed to send.",
							},
						},
						{
							Alert: "MiCajaCacheErrors",
							Expr:  `increase(micaja_cache_errors_total[10m]) > 10`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Alert cache is erroring",
								"description": "The active-alert cache keeps failing. Lookups fall through to the store, so latency may rise.",
							},
						},
					},
				},
			},
		},
	}
}
