// Package metrics declares the Prometheus instruments exposed on /metrics.
// 'promauto' registers them on the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts requests by method, path and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marvelkg_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures server response time. Buckets span from
	// pure graph lookups (sub-millisecond) to narrative generation, which
	// waits on an LLM.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marvelkg_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// QuestionsTotal counts pipeline outcomes: "answered", "empty", or one
	// of the failure kinds.
	QuestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marvelkg_questions_total",
			Help: "Total number of questions processed, by outcome",
		},
		[]string{"outcome"},
	)

	// GraphNodes tracks graph size by entity type, set once at load.
	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marvelkg_graph_nodes",
			Help: "Number of graph nodes, by entity type",
		},
		[]string{"type"},
	)

	// GraphEdges tracks graph size by relation label, set once at load.
	GraphEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marvelkg_graph_edges",
			Help: "Number of graph edges, by relation label",
		},
		[]string{"label"},
	)
)
