package gotenberg

import (
	"context"
	"time"

	"presentation-service-go/internal/pkg/circuitbreaker"
)

// Config полные настройки устойчивого клиента
type Config struct {
	URL     string
	Timeout time.Duration
	Retry   RetryConfig
	Breaker BreakerConfig
}

// ClientWithRetryAndCircuitBreaker комбинирует retry и circuit breaker механизмы.
// Каждая попытка проходит через Circuit Breaker, открытый breaker не повторяется
type ClientWithRetryAndCircuitBreaker struct {
	client  *Client
	breaker *ClientWithCircuitBreaker
	retrier *ClientWithRetry
}

var _ Converter = (*ClientWithRetryAndCircuitBreaker)(nil)

// NewClientWithRetryAndCircuitBreaker создает клиента с retry и circuit breaker механизмами
func NewClientWithRetryAndCircuitBreaker(cfg Config) *ClientWithRetryAndCircuitBreaker {
	client := NewClient(cfg.URL, cfg.Timeout)
	breaker := NewClientWithCircuitBreaker(healthChecked{client}, cfg.Breaker)
	return &ClientWithRetryAndCircuitBreaker{
		client:  client,
		breaker: breaker,
		retrier: NewClientWithRetry(breaker, cfg.Retry),
	}
}

// ConvertHTML конвертирует документ с использованием retry и circuit breaker механизмов
func (c *ClientWithRetryAndCircuitBreaker) ConvertHTML(ctx context.Context, html string) ([]byte, error) {
	return c.retrier.ConvertHTML(ctx, html)
}

// HealthCheck проверяет доступность Gotenberg с учетом в статистике
func (c *ClientWithRetryAndCircuitBreaker) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx, false)
}

// State возвращает текущее состояние Circuit Breaker
func (c *ClientWithRetryAndCircuitBreaker) State() circuitbreaker.State {
	return c.breaker.State()
}

// IsHealthy возвращает true, если Circuit Breaker в здоровом состоянии
func (c *ClientWithRetryAndCircuitBreaker) IsHealthy() bool {
	return c.breaker.IsHealthy()
}

// SetHandler устанавливает обработчик статистики для базового клиента
func (c *ClientWithRetryAndCircuitBreaker) SetHandler(handler StatsHandler) {
	c.client.SetHandler(handler)
}

// GetHandler возвращает обработчик статистики из базового клиента
func (c *ClientWithRetryAndCircuitBreaker) GetHandler() (StatsHandler, bool) {
	return c.client.GetHandler()
}

// healthChecked перед конвертацией проверяет здоровье сервиса, не учитывая проверку в статистике
type healthChecked struct {
	client *Client
}

func (h healthChecked) ConvertHTML(ctx context.Context, html string) ([]byte, error) {
	if err := h.client.HealthCheck(ctx, true); err != nil {
		return nil, err
	}
	return h.client.ConvertHTML(ctx, html)
}
