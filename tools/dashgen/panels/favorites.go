package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// FavoritesResolved shows favorites resolved to nodes and those dropped as
// not installable.
func FavoritesResolved() *timeseries.PanelBuilder {
	return TimeSeries("Favorites Resolved", "Favorite references resolved and filtered per second", TSWidth).
		WithTarget(PromQuery(Rate("mpc_favorites_resolved_total", ""), "resolved", "A")).
		WithTarget(PromQuery(Rate("mpc_favorites_filtered_total", ""), "not installable", "B")).
		Unit("ops").
		Thresholds(ThresholdsGreenOnly())
}

// FavoritesAuthFailures shows favorites calls rejected in the last 24h.
func FavoritesAuthFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Favorites Auth Failures (24h)").
		Description("Favorites calls rejected as not authorized in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(mpc_favorites_auth_failures_total{job="`+Job+`"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// InstallReports shows install outcome reports sent by kind and outcome.
func InstallReports() *timeseries.PanelBuilder {
	return TimeSeries("Install Reports", "Install success and error reports sent per second", FullWidth).
		WithTarget(PromQuery(Rate("mpc_install_reports_total", "", "kind", "outcome"), "{{kind}} {{outcome}}", "A")).
		Unit("ops").
		Thresholds(ThresholdsGreenOnly())
}
