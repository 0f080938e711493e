package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal количество HTTP запросов
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration длительность HTTP запросов
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// BlockRenderDuration длительность отрисовки одного блока
	BlockRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "block_render_duration_seconds",
			Help:    "Duration of a single block rendering in seconds",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"kind", "renderer"},
	)

	// BlockRenderErrorsTotal количество ошибок отрисовки блоков
	BlockRenderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "block_render_errors_total",
			Help: "Total number of block rendering errors",
		},
		[]string{"kind", "renderer"},
	)

	// MediaFetchTotal количество загрузок медиа
	MediaFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_fetch_total",
			Help: "Total number of media fetches",
		},
		[]string{"status"},
	)

	// MediaFetchDuration длительность загрузки медиа
	MediaFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_fetch_duration_seconds",
			Help:    "Duration of media fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheRequestsTotal обращения к кэшу
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache lookups",
		},
		[]string{"cache", "result"},
	)

	// CacheItemsCount количество элементов в кэше
	CacheItemsCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_items_count",
			Help: "Number of items in cache",
		},
		[]string{"cache"},
	)

	// CallbackRequestsTotal количество отправок результата
	CallbackRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callback_requests_total",
			Help: "Total number of result callbacks",
		},
		[]string{"status"},
	)

	// GotenbergRequestsTotal количество запросов к Gotenberg
	GotenbergRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gotenberg_requests_total",
			Help: "Total number of requests to Gotenberg service",
		},
		[]string{"status"},
	)

	// GotenbergRequestDuration длительность запросов к Gotenberg
	GotenbergRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gotenberg_request_duration_seconds",
			Help:    "Duration of Gotenberg requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// StorageOperationsTotal операции с хранилищем результатов
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "Total number of result storage operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// StorageSizeBytes объем хранимых результатов
	StorageSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storage_size_bytes",
			Help: "Current size of stored results in bytes",
		},
		[]string{"backend"},
	)
)
