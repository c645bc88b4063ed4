package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	Registry *prometheus.Registry

	SelectionChanges *prometheus.CounterVec
	MatrixBuilds     *prometheus.CounterVec
	MatrixRows       prometheus.Histogram
	CatalogCache     *prometheus.CounterVec
	CatalogRequests  *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		SelectionChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comparison",
			Name:      "selection_operations_total",
			Help:      "Comparison selection operations by kind and whether they changed state.",
		}, []string{"op", "outcome"}),
		MatrixBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comparison",
			Name:      "matrix_builds_total",
			Help:      "Comparison matrices built, by view.",
		}, []string{"view"}),
		MatrixRows: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "comparison",
			Name:      "matrix_rows",
			Help:      "Number of rows in built comparison matrices.",
			Buckets:   []float64{5, 10, 15, 20, 30, 50, 80},
		}),
		CatalogCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "cache_lookups_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"}),
		CatalogRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "source_requests_total",
			Help:      "Catalog source reads by operation and status.",
		}, []string{"op", "status"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),
	}
}

// Outcome labels a mutation result
func Outcome(changed bool) string {
	if changed {
		return "changed"
	}
	return "noop"
}
