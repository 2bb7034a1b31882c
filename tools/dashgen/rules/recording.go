package rules

// RecordingRules returns the recording rules the dashboard panels query.
func RecordingRules() PrometheusRule {
	return resource("mpc-recording-rules", RuleGroup{
		Name:     "mpc-recording",
		Interval: "30s",
		Rules: []Rule{
			{Record: "mpc:catalog_requests:rate5m", Expr: `sum(rate(mpc_catalog_requests_total{` + job + `}[5m]))`},
			{Record: "mpc:catalog_errors:rate5m", Expr: `sum(rate(mpc_catalog_requests_total{` + job + `,outcome="error"}[5m]))`},
			{Record: "mpc:cache_hits:rate5m", Expr: `sum(rate(mpc_cache_hits_total{` + job + `}[5m]))`},
			{Record: "mpc:cache_misses:rate5m", Expr: `sum(rate(mpc_cache_misses_total{` + job + `}[5m]))`},
			{Record: "mpc:http_requests:rate5m", Expr: `sum(rate(mpc_http_requests_total{` + job + `}[5m]))`},
			{Record: "mpc:http_errors:rate5m", Expr: `sum(rate(mpc_http_requests_total{` + job + `,status=~"5.."}[5m]))`},
		},
	})
}
