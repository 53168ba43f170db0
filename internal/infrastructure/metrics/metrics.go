package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Council-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Debate lifecycle counters
	DebatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "debates_total",
			Help:      "Debates started, by roster source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// Whole-debate duration histogram
	DebateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "debate_duration_seconds",
			Help:      "Full debate duration in seconds, rounds plus verdict",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"source"},
	)

	// Upstream completion calls
	CompletionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "completion_requests_total",
			Help:      "Completion API calls, by model and status",
		},
		[]string{"model", "status"},
	)

	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "completion_duration_seconds",
			Help:      "Completion API call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	// Active SSE debate streams
	ActiveDebates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "active_debates",
			Help:      "Debate streams currently open",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clarus",
			Subsystem: "council_api",
			Name:      "rate_limited_total",
			Help:      "Debate requests rejected by the rate limiter",
		},
	)
)

// RecordCompletionRequest tracks one upstream completion call.
func RecordCompletionRequest(model, status string, duration time.Duration) {
	CompletionRequestsTotal.WithLabelValues(model, status).Inc()
	CompletionDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordDebate tracks one finished (or failed) debate.
func RecordDebate(source, outcome string, duration time.Duration) {
	DebatesTotal.WithLabelValues(source, outcome).Inc()
	if outcome == "completed" {
		DebateDuration.WithLabelValues(source).Observe(duration.Seconds())
	}
}
