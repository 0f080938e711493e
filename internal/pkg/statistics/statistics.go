// Package statistics собирает статистику запросов, сборок презентаций и обращений к Gotenberg.
package statistics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"presentation-service-go/internal/pkg/logger"
)

// dbTimeout ограничивает одну запись в базу
const dbTimeout = 2 * time.Second

// New создает хранилище статистики. db может быть nil, тогда статистика живет только в памяти
func New(db DB) *Statistics {
	return &Statistics{
		stats:  newStats(),
		db:     db,
		logger: logger.Component("statistics"),
	}
}

func (s *Statistics) persist(op string, fn func(ctx context.Context) error) {
	if s.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		s.logger.Warn("Failed to persist statistics", zap.String("operation", op), zap.Error(err))
	}
}

func observe(total *time.Duration, minD, maxD *time.Duration, d time.Duration) {
	*total += d
	if *minD == 0 || d < *minD {
		*minD = d
	}
	if d > *maxD {
		*maxD = d
	}
}

// TrackRequest регистрирует HTTP запрос
func (s *Statistics) TrackRequest(path, method string, duration time.Duration, success bool) {
	now := time.Now()
	s.mu.Lock()
	r := &s.stats.Requests
	r.TotalRequests++
	if success {
		r.SuccessRequests++
	} else {
		r.FailedRequests++
	}
	observe(&r.TotalDuration, &r.MinDuration, &r.MaxDuration, duration)
	r.RequestsByDay[now.Weekday()]++
	r.RequestsByHour[now.Hour()]++
	r.LastUpdated = now
	s.mu.Unlock()

	s.persist("request", func(ctx context.Context) error {
		return s.db.LogRequest(ctx, now, path, method, duration, success)
	})
}

// TrackGeneration регистрирует сборку презентации
func (s *Statistics) TrackGeneration(template, format string, duration time.Duration, hasError bool) {
	now := time.Now()
	s.mu.Lock()
	g := &s.stats.Generations
	g.TotalGenerations++
	if hasError {
		g.ErrorGenerations++
	}
	g.ByFormat[format]++
	g.ByTemplate[template]++
	observe(&g.TotalDuration, &g.MinDuration, &g.MaxDuration, duration)
	g.LastGenerationTime = now
	s.mu.Unlock()

	s.persist("generation", func(ctx context.Context) error {
		return s.db.LogGeneration(ctx, now, template, format, duration, hasError)
	})
}

// TrackGotenbergRequest регистрирует запрос к Gotenberg
func (s *Statistics) TrackGotenbergRequest(duration time.Duration, hasError bool, isHealthCheck bool) {
	now := time.Now()
	s.mu.Lock()
	g := &s.stats.Gotenberg
	g.TotalRequests++
	if hasError {
		g.ErrorRequests++
	}
	if isHealthCheck {
		g.HealthChecks++
	}
	observe(&g.TotalDuration, &g.MinDuration, &g.MaxDuration, duration)
	g.LastRequestTime = now
	s.mu.Unlock()

	s.persist("gotenberg", func(ctx context.Context) error {
		return s.db.LogGotenberg(ctx, now, duration, hasError, isHealthCheck)
	})
}

// TrackFile регистрирует готовый файл
func (s *Statistics) TrackFile(format string, size int64) {
	now := time.Now()
	s.mu.Lock()
	f := &s.stats.Files
	f.TotalFiles++
	f.TotalSize += size
	if f.MinSize == 0 || size < f.MinSize {
		f.MinSize = size
	}
	if size > f.MaxSize {
		f.MaxSize = size
	}
	f.AverageSize = float64(f.TotalSize) / float64(f.TotalFiles)
	f.LastProcessedTime = now
	s.mu.Unlock()

	s.persist("file", func(ctx context.Context) error {
		return s.db.LogFile(ctx, now, format, size)
	})
}

// Snapshot возвращает копию статистики из памяти
func (s *Statistics) Snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.stats
	out.Requests.RequestsByDay = make(map[time.Weekday]uint64, len(s.stats.Requests.RequestsByDay))
	for k, v := range s.stats.Requests.RequestsByDay {
		out.Requests.RequestsByDay[k] = v
	}
	out.Requests.RequestsByHour = make(map[int]uint64, len(s.stats.Requests.RequestsByHour))
	for k, v := range s.stats.Requests.RequestsByHour {
		out.Requests.RequestsByHour[k] = v
	}
	out.Generations.ByFormat = make(map[string]uint64, len(s.stats.Generations.ByFormat))
	for k, v := range s.stats.Generations.ByFormat {
		out.Generations.ByFormat[k] = v
	}
	out.Generations.ByTemplate = make(map[string]uint64, len(s.stats.Generations.ByTemplate))
	for k, v := range s.stats.Generations.ByTemplate {
		out.Generations.ByTemplate[k] = v
	}
	return out
}

// GetStatistics возвращает статистику в формате для API.
// С базой данных учитывается since, без нее возвращается статистика с момента запуска
func (s *Statistics) GetStatistics(ctx context.Context, since time.Time) (StatisticsResponse, error) {
	if s.db == nil {
		return NewResponse(s.Snapshot()), nil
	}
	stats, err := s.db.GetStatistics(ctx, since)
	if err != nil {
		return StatisticsResponse{}, fmt.Errorf("failed to load statistics: %w", err)
	}
	return NewResponse(*stats), nil
}

func average(total time.Duration, count uint64) string {
	if count == 0 {
		return time.Duration(0).String()
	}
	return (total / time.Duration(count)).String()
}

// NewResponse преобразует снимок в ответ API
func NewResponse(st Stats) StatisticsResponse {
	var response StatisticsResponse

	response.Requests.Total = st.Requests.TotalRequests
	response.Requests.Success = st.Requests.SuccessRequests
	response.Requests.Failed = st.Requests.FailedRequests
	response.Requests.AverageDuration = average(st.Requests.TotalDuration, st.Requests.TotalRequests)
	response.Requests.MinDuration = st.Requests.MinDuration.String()
	response.Requests.MaxDuration = st.Requests.MaxDuration.String()

	response.Requests.ByDayOfWeek = make(map[string]uint64)
	for day, count := range st.Requests.RequestsByDay {
		response.Requests.ByDayOfWeek[day.String()] = count
	}
	response.Requests.ByHourOfDay = make(map[string]uint64)
	for hour, count := range st.Requests.RequestsByHour {
		response.Requests.ByHourOfDay[fmt.Sprintf("%02d:00", hour)] = count
	}

	response.Generations.Total = st.Generations.TotalGenerations
	response.Generations.Errors = st.Generations.ErrorGenerations
	response.Generations.ByFormat = make(map[string]uint64)
	for k, v := range st.Generations.ByFormat {
		response.Generations.ByFormat[k] = v
	}
	response.Generations.ByTemplate = make(map[string]uint64)
	for k, v := range st.Generations.ByTemplate {
		response.Generations.ByTemplate[k] = v
	}
	response.Generations.AverageDuration = average(st.Generations.TotalDuration, st.Generations.TotalGenerations)
	response.Generations.MinDuration = st.Generations.MinDuration.String()
	response.Generations.MaxDuration = st.Generations.MaxDuration.String()

	response.Gotenberg.TotalRequests = st.Gotenberg.TotalRequests
	response.Gotenberg.ErrorRequests = st.Gotenberg.ErrorRequests
	response.Gotenberg.HealthChecks = st.Gotenberg.HealthChecks
	response.Gotenberg.AverageDuration = average(st.Gotenberg.TotalDuration, st.Gotenberg.TotalRequests)
	response.Gotenberg.MinDuration = st.Gotenberg.MinDuration.String()
	response.Gotenberg.MaxDuration = st.Gotenberg.MaxDuration.String()

	response.Files.TotalFiles = st.Files.TotalFiles
	response.Files.TotalSize = formatBytes(st.Files.TotalSize)
	response.Files.MinSize = formatBytes(st.Files.MinSize)
	response.Files.MaxSize = formatBytes(st.Files.MaxSize)
	response.Files.AverageSize = formatBytes(int64(st.Files.AverageSize))

	response.LastUpdated = st.Requests.LastUpdated
	return response
}

// formatBytes форматирует размер в байтах в человекочитаемый формат
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
