// Package metrics holds the Prometheus collectors exported by the relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat outcomes recorded by ChatRequests
const (
	OutcomeStreamed      = "streamed"
	OutcomeRejected      = "rejected"
	OutcomeBadRequest    = "bad_request"
	OutcomeUpstreamError = "upstream_error"
	OutcomeInterrupted   = "interrupted"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbchat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barbchat_http_request_duration_seconds",
			Help:    "HTTP request duration, including the full stream for chat requests",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// Relay metrics
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbchat_chat_requests_total",
			Help: "Chat requests by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbchat_upstream_responses_total",
			Help: "Upstream responses by status code",
		},
		[]string{"status"},
	)

	StreamedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barbchat_streamed_bytes_total",
			Help: "Bytes piped from upstream to callers",
		},
	)

	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barbchat_active_streams",
			Help: "Streams currently being piped",
		},
	)

	UpstreamLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barbchat_upstream_latency_seconds",
			Help:    "Time until upstream response headers arrive",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)
