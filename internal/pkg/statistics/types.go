package statistics

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RequestStats содержит статистику по HTTP запросам
type RequestStats struct {
	TotalRequests   uint64
	SuccessRequests uint64
	FailedRequests  uint64
	TotalDuration   time.Duration
	MinDuration     time.Duration
	MaxDuration     time.Duration
	RequestsByDay   map[time.Weekday]uint64
	RequestsByHour  map[int]uint64
	LastUpdated     time.Time
}

// GenerationStats содержит статистику сборки презентаций
type GenerationStats struct {
	TotalGenerations   uint64
	ErrorGenerations   uint64
	ByFormat           map[string]uint64
	ByTemplate         map[string]uint64
	TotalDuration      time.Duration
	MinDuration        time.Duration
	MaxDuration        time.Duration
	LastGenerationTime time.Time
}

// GotenbergStats содержит статистику по работе с Gotenberg
type GotenbergStats struct {
	TotalRequests   uint64
	ErrorRequests   uint64
	HealthChecks    uint64
	TotalDuration   time.Duration
	MinDuration     time.Duration
	MaxDuration     time.Duration
	LastRequestTime time.Time
}

// FileStats содержит статистику по готовым файлам
type FileStats struct {
	TotalFiles        uint64
	TotalSize         int64
	MinSize           int64
	MaxSize           int64
	AverageSize       float64
	LastProcessedTime time.Time
}

// Stats снимок статистики
type Stats struct {
	Requests    RequestStats
	Generations GenerationStats
	Gotenberg   GotenbergStats
	Files       FileStats
}

func newStats() Stats {
	return Stats{
		Requests: RequestStats{
			RequestsByDay:  make(map[time.Weekday]uint64),
			RequestsByHour: make(map[int]uint64),
		},
		Generations: GenerationStats{
			ByFormat:   make(map[string]uint64),
			ByTemplate: make(map[string]uint64),
		},
	}
}

// Statistics потокобезопасное хранилище статистики.
// При заданной базе события дополнительно записываются в нее
type Statistics struct {
	mu     sync.RWMutex
	stats  Stats
	db     DB
	logger *zap.Logger
}

// StatisticsResponse структура ответа API
type StatisticsResponse struct {
	Requests struct {
		Total           uint64            `json:"total"`
		Success         uint64            `json:"success"`
		Failed          uint64            `json:"failed"`
		AverageDuration string            `json:"average_duration"`
		MinDuration     string            `json:"min_duration"`
		MaxDuration     string            `json:"max_duration"`
		ByDayOfWeek     map[string]uint64 `json:"by_day_of_week"`
		ByHourOfDay     map[string]uint64 `json:"by_hour_of_day"`
	} `json:"requests"`

	Generations struct {
		Total           uint64            `json:"total"`
		Errors          uint64            `json:"errors"`
		ByFormat        map[string]uint64 `json:"by_format"`
		ByTemplate      map[string]uint64 `json:"by_template"`
		AverageDuration string            `json:"average_duration"`
		MinDuration     string            `json:"min_duration"`
		MaxDuration     string            `json:"max_duration"`
	} `json:"generations"`

	Gotenberg struct {
		TotalRequests   uint64 `json:"total_requests"`
		ErrorRequests   uint64 `json:"error_requests"`
		HealthChecks    uint64 `json:"health_checks"`
		AverageDuration string `json:"average_duration"`
		MinDuration     string `json:"min_duration"`
		MaxDuration     string `json:"max_duration"`
	} `json:"gotenberg"`

	Files struct {
		TotalFiles  uint64 `json:"total_files"`
		TotalSize   string `json:"total_size"`
		MinSize     string `json:"min_size"`
		MaxSize     string `json:"max_size"`
		AverageSize string `json:"average_size"`
	} `json:"files"`

	LastUpdated time.Time `json:"last_updated"`
}
