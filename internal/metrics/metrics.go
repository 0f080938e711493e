package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal считает общее количество запросов
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presentation_service_requests_total",
			Help: "The total number of processed requests",
		},
		[]string{"status", "operation"},
	)

	// RequestDuration измеряет длительность запросов
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presentation_service_request_duration_seconds",
			Help:    "The duration of requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation"},
	)

	// ErrorsTotal считает количество ошибок
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presentation_service_errors_total",
			Help: "The total number of errors",
		},
		[]string{"type", "operation"},
	)

	// PresentationsTotal считает сборки презентаций
	PresentationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presentation_service_presentations_total",
			Help: "The total number of assembled presentations",
		},
		[]string{"template", "format", "status"},
	)

	// PresentationDuration измеряет длительность сборки документа
	PresentationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presentation_service_presentation_duration_seconds",
			Help:    "The duration of presentation assembly in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"template", "format"},
	)

	// FileSize измеряет размеры генерируемых файлов
	FileSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presentation_service_file_size_bytes",
			Help:    "The size of generated files in bytes",
			Buckets: []float64{1e5, 5e5, 1e6, 5e6, 1e7, 5e7}, // 100KB, 500KB, 1MB, 5MB, 10MB, 50MB
		},
		[]string{"format"},
	)

	// ValidationFailuresTotal считает блоки с ошибками валидации
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presentation_service_validation_failures_total",
			Help: "The total number of blocks rejected by validation",
		},
		[]string{"kind"},
	)

	// GenerationsInFlight количество фоновых сборок в работе
	GenerationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "presentation_service_generations_in_flight",
			Help: "The number of background generations in progress",
		},
	)
)
