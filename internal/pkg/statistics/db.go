package statistics

import (
	"context"
	"time"
)

// DB представляет интерфейс для работы с базой данных статистики
type DB interface {
	// LogRequest записывает информацию о запросе
	LogRequest(ctx context.Context, timestamp time.Time, path, method string, duration time.Duration, success bool) error

	// LogGeneration записывает информацию о сборке презентации
	LogGeneration(ctx context.Context, timestamp time.Time, template, format string, duration time.Duration, hasError bool) error

	// LogGotenberg записывает информацию о запросе к Gotenberg
	LogGotenberg(ctx context.Context, timestamp time.Time, duration time.Duration, hasError, isHealthCheck bool) error

	// LogFile записывает информацию о готовом файле
	LogFile(ctx context.Context, timestamp time.Time, format string, size int64) error

	// GetStatistics возвращает статистику начиная с since. Нулевое время означает всю историю
	GetStatistics(ctx context.Context, since time.Time) (*Stats, error)

	// Close закрывает соединение с базой данных
	Close() error
}
