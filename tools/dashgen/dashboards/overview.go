// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/marketplace-client/tools/dashgen/panels"
)

// BuildOverview constructs the mpc overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Marketplace Client Overview").
		Uid("mpc-overview").
		Tags([]string{"mpc", "marketplace"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.CatalogRequestRate()).
		WithPanel(panels.CatalogLatency()).
		WithPanel(panels.CatalogErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Quota").
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Cache").
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.CacheTraffic()))

	b.WithRow(dashboard.NewRowBuilder("Favorites and Installs").
		WithPanel(panels.FavoritesResolved()).
		WithPanel(panels.FavoritesAuthFailures()).
		WithPanel(panels.InstallReports()))

	b.WithRow(dashboard.NewRowBuilder("Mock Server").
		WithPanel(panels.UptimeStat()).
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
