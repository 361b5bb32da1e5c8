package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reminder evaluator pass duration (seconds)
	EvaluatorPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_pass_duration_seconds",
			Help:    "Reminder evaluator pass duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	// Reminder notifications emitted
	ReminderEmittedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_emitted_count",
			Help: "Total number of reminder notifications emitted",
		},
		[]string{"source"}, // source: explicit, default
	)

	// Dedup outcomes during evaluation
	ReminderDedupCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dedup_count",
			Help: "Total number of reminder occurrences skipped as duplicates",
		},
		[]string{"guard"}, // guard: redis, ledger
	)

	// MQ consume latency (milliseconds)
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Slow query count
	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_count",
			Help: "Total number of slow database queries",
		},
	)
)

// ObserveEvaluatorPass records the duration of one evaluator pass.
func ObserveEvaluatorPass(duration time.Duration) {
	EvaluatorPassDuration.Observe(duration.Seconds())
}

// IncrementReminderEmitted increments the emitted counter for a schedule source.
func IncrementReminderEmitted(source string) {
	ReminderEmittedCount.WithLabelValues(source).Inc()
}

// IncrementReminderDedup increments the dedup counter for a guard.
func IncrementReminderDedup(guard string) {
	ReminderDedupCount.WithLabelValues(guard).Inc()
}

// RecordMQConsumeLatency records MQ consumption latency.
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementSlowQuery counts a slow query occurrence.
func IncrementSlowQuery(sql string, duration time.Duration) {
	SlowQueryCount.Inc()
}
