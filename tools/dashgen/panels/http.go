package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// UptimeStat shows the mock server's process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - process_start_time_seconds{job="`+Job+`"}`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}

// RequestRate shows mock server HTTP requests per second by route.
func RequestRate() *timeseries.PanelBuilder {
	return TimeSeries("Request Rate", "Mock server HTTP requests per second", 6).
		WithTarget(PromQuery(`mpc:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		Thresholds(ThresholdsGreenOnly())
}

// LatencyPercentiles shows mock server request latency percentiles.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return TimeSeries("Latency Percentiles", "Mock server HTTP request duration percentiles", 6).
		WithTarget(PromQuery(Quantile(0.50, "mpc_http_request_duration_seconds"), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, "mpc_http_request_duration_seconds"), "p95", "B")).
		WithTarget(PromQuery(Quantile(0.99, "mpc_http_request_duration_seconds"), "p99", "C")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly())
}

// ErrorRate shows mock server 5xx answers as a percentage of requests.
func ErrorRate() *timeseries.PanelBuilder {
	return TimeSeries("Error Rate %", "HTTP 5xx error rate as percentage of total requests", 6).
		WithTarget(PromQuery(`mpc:http_errors:rate5m / mpc:http_requests:rate5m * 100`, "error %", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}
