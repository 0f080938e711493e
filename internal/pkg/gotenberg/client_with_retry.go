package gotenberg

import (
	"context"
	"time"

	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/retry"
)

// RetryConfig настройки повторов запросов к Gotenberg
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig возвращает настройки повторов по умолчанию
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2,
	}
}

// ClientWithRetry добавляет retry механизм к конвертеру
type ClientWithRetry struct {
	next    Converter
	retrier *retry.Retrier
}

var _ Converter = (*ClientWithRetry)(nil)

// NewClientWithRetry оборачивает конвертер повторами.
// Повторяются только временные отказы: сетевые ошибки, 5xx и 429
func NewClientWithRetry(next Converter, cfg RetryConfig) *ClientWithRetry {
	return &ClientWithRetry{
		next: next,
		retrier: retry.New(
			"gotenberg",
			logger.Component("gotenberg"),
			retry.WithMaxAttempts(cfg.MaxAttempts),
			retry.WithInitialDelay(cfg.InitialDelay),
			retry.WithMaxDelay(cfg.MaxDelay),
			retry.WithBackoffFactor(cfg.BackoffFactor),
			retry.WithRetryIf(retry.ShouldRetry),
		),
	}
}

// ConvertHTML конвертирует документ с использованием retry механизма
func (c *ClientWithRetry) ConvertHTML(ctx context.Context, html string) ([]byte, error) {
	var result []byte
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		result, err = c.next.ConvertHTML(ctx, html)
		return err
	})
	return result, err
}
