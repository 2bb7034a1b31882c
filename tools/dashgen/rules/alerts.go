package rules

// AlertRules returns the alerting rules.
func AlertRules() PrometheusRule {
	return resource("mpc-alerts", RuleGroup{
		Name: "mpc-alerts",
		Rules: []Rule{
			{
				Alert:  "MpcDown",
				Expr:   `up{` + job + `} == 0`,
				For:    "5m",
				Labels: map[string]string{"severity": "critical"},
				Annotations: map[string]string{
					"summary":     "mpc target is down",
					"description": "The mpc scrape target has been unreachable for 5 minutes.",
				},
			},
			{
				Alert:  "MpcCatalogErrors",
				Expr:   `mpc:catalog_errors:rate5m / mpc:catalog_requests:rate5m > 0.05`,
				For:    "10m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Catalog requests failing",
					"description": "More than 5% of catalog requests failed over the last 10 minutes.",
				},
			},
			{
				Alert:  "MpcDailyQuotaReached",
				Expr:   `increase(mpc_rate_limit_daily_hits_total{` + job + `}[1h]) > 0`,
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Daily catalog quota reached",
					"description": "Catalog requests are being rejected by the daily quota.",
				},
			},
			{
				Alert:  "MpcFavoritesAuthFailures",
				Expr:   `increase(mpc_favorites_auth_failures_total{` + job + `}[15m]) > 3`,
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Favorites credentials rejected",
					"description": "The favorites service rejected more than 3 calls in 15 minutes.",
				},
			},
			{
				Alert:  "MpcMockServerErrors",
				Expr:   `mpc:http_errors:rate5m / mpc:http_requests:rate5m > 0.05`,
				For:    "5m",
				Labels: map[string]string{"severity": "info"},
				Annotations: map[string]string{
					"summary":     "Mock marketplace returning errors",
					"description": "More than 5% of mock server requests answered with 5xx.",
				},
			},
		},
	})
}
