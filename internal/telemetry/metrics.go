package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemoteFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_remote_fetch_total",
		Help: "Total number of remote collection fetches",
	}, []string{"collection", "outcome"})

	RemoteFetchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_remote_fetch_latency_seconds",
		Help:    "Latency of remote collection fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Total number of catalog mutations",
	}, []string{"operation", "outcome"})

	JoinDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_join_duration_seconds",
		Help:    "Time spent rebuilding the enriched product view",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})

	EnrichedProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_enriched_products",
		Help: "Number of products in the current enriched view",
	})

	OrderApprovalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_approvals_total",
		Help: "Total number of order approval attempts",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
)

// Outcome labels a counter with "success" or "error".
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
