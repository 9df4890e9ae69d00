// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/mi-caja/tools/dashgen/panels"
)

// BuildOverview constructs the Mi Caja Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Mi Caja Overview").
		Uid("micaja-overview").
		Tags([]string{"micaja", "mi-caja"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.ActiveSessionsStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.RequestsByRoute()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Alert Engine").
		WithPanel(panels.EvaluationOutcomes()).
		WithPanel(panels.CheckDuration()).
		WithPanel(panels.DebouncedChecks()).
		WithPanel(panels.CriticalItems()).
		WithPanel(panels.SnoozesByKind()).
		WithPanel(panels.PresentedToday()))

	b.WithRow(dashboard.NewRowBuilder("Notifications & Sessions").
		WithPanel(panels.SoundCues()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()).
		WithPanel(panels.CacheErrors()).
		WithPanel(panels.SessionsReaped()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
