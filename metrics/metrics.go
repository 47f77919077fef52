// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "exchangerates"

// label values
const (
	Hit     = "hit"
	Miss    = "miss"
	OK      = "ok"
	Failed  = "error"
	Absent  = "absent"
	Unknown = "unknown"
)

// Metrics collectors, all registered on the Registerer given to New
type Metrics struct {
	// CacheLookups counts cache lookups by result (hit, miss)
	CacheLookups *prometheus.CounterVec

	// CacheEntries current number of cached records
	CacheEntries prometheus.Gauge

	// UpstreamRequests counts document fetches by outcome (ok, error)
	UpstreamRequests *prometheus.CounterVec

	// UpstreamDuration time taken to fetch and parse the document
	UpstreamDuration prometheus.Histogram

	// Extractions counts extraction results (ok, absent)
	Extractions *prometheus.CounterVec

	// HTTPRequests counts served requests by method, route and status
	HTTPRequests *prometheus.CounterVec

	// HTTPDuration request latency by method and route
	HTTPDuration *prometheus.HistogramVec

	// HTTPInFlight requests currently being served
	HTTPInFlight prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by result.",
			},
			[]string{"result"},
		),
		CacheEntries: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_entries",
				Help:      "Number of cached exchange rate records.",
			},
		),
		UpstreamRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Upstream document fetches by outcome.",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream document fetch and parse duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Extractions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Document extractions by result.",
			},
			[]string{"result"},
		),
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed.",
			},
		),
	}
}
