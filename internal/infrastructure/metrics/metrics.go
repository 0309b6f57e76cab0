package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Plan-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Subsystem: "plan_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campaign",
			Subsystem: "plan_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Plan creation counter, split by idempotency outcome
	PlansCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Subsystem: "plan_api",
			Name:      "plans_created_total",
			Help:      "Total plan creation requests",
		},
		[]string{"outcome"},
	)

	// Generation counter
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campaign",
			Subsystem: "plan_api",
			Name:      "generations_total",
			Help:      "Total plan generation jobs processed",
		},
		[]string{"status"},
	)

	// Generation duration histogram
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campaign",
			Subsystem: "plan_api",
			Name:      "generation_duration_seconds",
			Help:      "Plan generation duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"ai_model"},
	)

	// Queue depth gauge
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "campaign",
			Subsystem: "plan_api",
			Name:      "queue_depth",
			Help:      "Queued plan generation jobs",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordPlanCreated records a plan creation request outcome
// ("created" or "replayed").
func RecordPlanCreated(outcome string) {
	PlansCreatedTotal.WithLabelValues(outcome).Inc()
}

// RecordGeneration records a generation job execution
func RecordGeneration(status, aiModel string, durationSec float64) {
	GenerationsTotal.WithLabelValues(status).Inc()
	GenerationDuration.WithLabelValues(aiModel).Observe(durationSec)
}

// SetQueueDepth sets the current queue depth
func SetQueueDepth(depth int64) {
	QueueDepth.Set(float64(depth))
}
