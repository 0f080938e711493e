package gotenberg

import (
	"context"
	"time"

	"presentation-service-go/internal/pkg/circuitbreaker"
	"presentation-service-go/internal/pkg/retry"
)

// BreakerConfig настройки Circuit Breaker для Gotenberg
type BreakerConfig struct {
	FailureThreshold int
	ResetTimeout     time.Duration
	HalfOpenMaxCalls int
	SuccessThreshold int
}

// DefaultBreakerConfig возвращает настройки по умолчанию
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     10 * time.Second,
		HalfOpenMaxCalls: 2,
		SuccessThreshold: 2,
	}
}

// ClientWithCircuitBreaker добавляет Circuit Breaker к конвертеру
type ClientWithCircuitBreaker struct {
	next Converter
	cb   *circuitbreaker.CircuitBreaker
}

var _ Converter = (*ClientWithCircuitBreaker)(nil)

// NewClientWithCircuitBreaker оборачивает конвертер Circuit Breaker
func NewClientWithCircuitBreaker(next Converter, cfg BreakerConfig) *ClientWithCircuitBreaker {
	return &ClientWithCircuitBreaker{
		next: next,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Config{
			Name:             "gotenberg",
			FailureThreshold: cfg.FailureThreshold,
			ResetTimeout:     cfg.ResetTimeout,
			HalfOpenMaxCalls: cfg.HalfOpenMaxCalls,
			SuccessThreshold: cfg.SuccessThreshold,
			// 4xx означает ошибку в документе, а не отказ сервиса
			IsFailure: retry.ShouldRetry,
		}),
	}
}

// ConvertHTML конвертирует документ с использованием Circuit Breaker
func (c *ClientWithCircuitBreaker) ConvertHTML(ctx context.Context, html string) ([]byte, error) {
	var result []byte
	err := c.cb.Execute(ctx, func(ctx context.Context) error {
		var err error
		result, err = c.next.ConvertHTML(ctx, html)
		return err
	})
	return result, err
}

// State возвращает текущее состояние Circuit Breaker
func (c *ClientWithCircuitBreaker) State() circuitbreaker.State {
	return c.cb.State()
}

// IsHealthy возвращает true, если Circuit Breaker в здоровом состоянии
func (c *ClientWithCircuitBreaker) IsHealthy() bool {
	return c.cb.IsHealthy()
}
