package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheHitRatio shows the share of catalog lookups served from the cache.
func CacheHitRatio() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Cache Hit %").
		Description("Catalog lookups served from the cache").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`mpc:cache_hits:rate5m / (mpc:cache_hits:rate5m + mpc:cache_misses:rate5m) * 100`,
			"", "A",
		)).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsRedGreen(50)).
		ColorScheme(ColorSchemeThresholds())
}

// CacheTraffic shows cache hits and misses per second by kind.
func CacheTraffic() *timeseries.PanelBuilder {
	return TimeSeries("Cache Traffic", "Cache hits and misses per second by kind", 16).
		WithTarget(PromQuery(Rate("mpc_cache_hits_total", "", "kind"), "hit {{kind}}", "A")).
		WithTarget(PromQuery(Rate("mpc_cache_misses_total", "", "kind"), "miss {{kind}}", "B")).
		Unit("ops").
		Thresholds(ThresholdsGreenOnly()).
		DrawStyle(common.GraphDrawStyleBars)
}
