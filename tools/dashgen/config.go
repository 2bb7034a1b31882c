package main

import "errors"

// KnownMetrics is the set of metric names exported by mpc and the mock
// marketplace plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Catalog metrics.
	"mpc_catalog_requests_total":                  true,
	"mpc_catalog_request_duration_seconds_bucket": true,
	"mpc_rate_limit_daily_hits_total":             true,
	"mpc_daily_usage":                             true,

	// Cache metrics.
	"mpc_cache_hits_total":   true,
	"mpc_cache_misses_total": true,

	// Favorites and install report metrics.
	"mpc_favorites_resolved_total":      true,
	"mpc_favorites_filtered_total":      true,
	"mpc_favorites_auth_failures_total": true,
	"mpc_install_reports_total":         true,

	// Mock server HTTP metrics.
	"mpc_http_request_duration_seconds_bucket": true,
	"mpc_http_requests_total":                  true,

	// Recording rules.
	"mpc:catalog_requests:rate5m": true,
	"mpc:catalog_errors:rate5m":   true,
	"mpc:cache_hits:rate5m":       true,
	"mpc:cache_misses:rate5m":     true,
	"mpc:http_requests:rate5m":    true,
	"mpc:http_errors:rate5m":      true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
