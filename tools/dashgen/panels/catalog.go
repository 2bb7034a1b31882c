package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CatalogRequestRate shows catalog requests per second by kind.
func CatalogRequestRate() *timeseries.PanelBuilder {
	return TimeSeries("Catalog Requests", "Catalog requests per second by kind", 8).
		WithTarget(PromQuery(Rate("mpc_catalog_requests_total", "", "kind"), "{{kind}}", "A")).
		Unit("reqps").
		Thresholds(ThresholdsGreenOnly())
}

// CatalogLatency shows catalog request latency percentiles.
func CatalogLatency() *timeseries.PanelBuilder {
	return TimeSeries("Catalog Latency", "Catalog request duration percentiles", 8).
		WithTarget(PromQuery(Quantile(0.50, "mpc_catalog_request_duration_seconds"), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, "mpc_catalog_request_duration_seconds"), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, "mpc_catalog_request_duration_seconds"), "p99", "C")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly())
}

// CatalogErrorRate shows failed catalog requests as a percentage of all
// requests. Not-found answers are outcomes, not failures.
func CatalogErrorRate() *timeseries.PanelBuilder {
	return TimeSeries("Catalog Error Rate %", "Failed catalog requests as percentage of total", 8).
		WithTarget(PromQuery(`mpc:catalog_errors:rate5m / mpc:catalog_requests:rate5m * 100`, "error %", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// DailyUsage shows catalog requests issued in the rolling 24h window.
func DailyUsage() *timeseries.PanelBuilder {
	return TimeSeries("Daily Usage", "Catalog requests issued in the rolling 24h quota window", TSWidth).
		WithTarget(PromQuery(`mpc_daily_usage{job="`+Job+`"}`, "usage", "A")).
		Thresholds(ThresholdsGreenOnly())
}

// LimitHits shows requests rejected by the daily quota in the last 24h.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Quota Rejections (24h)").
		Description("Requests rejected by the daily quota in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(mpc_rate_limit_daily_hits_total{job="`+Job+`"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
