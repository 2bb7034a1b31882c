// Package metrics defines Prometheus metrics for the marketplace client and
// the mock marketplace server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mpc"

// Catalog request metrics, labelled by request kind ("markets", "node",
// "search", ...) and outcome ("ok", "not_found", "error").
var (
	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Total number of catalog requests issued.",
	}, []string{"kind", "outcome"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Duration of catalog requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	DailyLimitHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_daily_hits_total",
		Help:      "Total number of requests rejected by the daily request quota.",
	})

	DailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "daily_usage",
		Help:      "Catalog requests issued within the rolling 24-hour window.",
	})
)

// Cache metrics.
var (
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of catalog cache hits.",
	}, []string{"kind"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of catalog cache misses.",
	}, []string{"kind"})
)

// Favorites metrics.
var (
	FavoritesResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorites_resolved_total",
		Help:      "Total number of favorite references resolved to full nodes.",
	})

	FavoritesFilteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorites_filtered_total",
		Help:      "Total number of resolved favorites dropped as not installable.",
	})

	FavoritesAuthFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorites_auth_failures_total",
		Help:      "Total number of favorites calls rejected as not authorized.",
	})
)

// Install report metrics.
var (
	InstallReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "install_reports_total",
		Help:      "Total number of install outcome reports sent.",
	}, []string{"kind", "outcome"})
)

// Mock server HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of mock server HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of mock server HTTP requests.",
	}, []string{"method", "path", "status"})
)
