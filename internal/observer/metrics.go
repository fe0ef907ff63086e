package observer

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpLabels = []string{"method", "path", "status"}

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentcrm_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		httpLabels,
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agentcrm_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: prometheus.DefBuckets,
		},
		httpLabels,
	)

	aiGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentcrm_ai_generations_total",
			Help: "Total number of AI context generations, labeled by outcome (generated/fallback).",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequest increments the request counter and observes duration.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// IncAIGeneration counts a context generation outcome.
func IncAIGeneration(outcome string) {
	aiGenerationsTotal.WithLabelValues(outcome).Inc()
}
