package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RetryAttemptsTotal количество попыток по статусам
	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of retry attempts",
		},
		[]string{"operation", "attempt", "status"},
	)

	// RetryOperationDuration длительность отдельных попыток
	RetryOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retry_operation_duration_seconds",
			Help:    "Duration of a single retried operation attempt",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"operation", "attempt", "status"},
	)

	// RetryErrorsTotal ошибки попыток по типам
	RetryErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_errors_total",
			Help: "Total number of retry errors by type",
		},
		[]string{"operation", "error_type", "attempt"},
	)

	// RetryBackoffDuration длительность ожидания между попытками
	RetryBackoffDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retry_backoff_duration_seconds",
			Help:    "Backoff delay between retry attempts",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
		},
		[]string{"operation", "attempt"},
	)

	// RetryCurrentAttempts количество операций, находящихся в retry
	RetryCurrentAttempts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "retry_current_operations",
			Help: "Number of operations currently being retried",
		},
		[]string{"operation"},
	)

	// RetrySuccessRate доля успешных попыток последней операции
	RetrySuccessRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "retry_success_rate",
			Help: "Share of successful attempts of the last retried operation",
		},
		[]string{"operation"},
	)
)
