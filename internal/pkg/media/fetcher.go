package media

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"presentation-service-go/internal/pkg/cache"
	"presentation-service-go/internal/pkg/circuitbreaker"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/retry"
	"presentation-service-go/internal/pkg/tracing"
)

// Source источник исходных байтов медиафайла
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherConfig параметры загрузки
type FetcherConfig struct {
	// Timeout ограничивает одну загрузку вместе с повторами
	Timeout time.Duration
	// MaxAttempts количество попыток одного запроса
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultFetcherConfig возвращает настройки по умолчанию
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:      10 * time.Second,
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
	}
}

// Fetcher загружает медиа через кэш, с повторами и circuit breaker
type Fetcher struct {
	source  Source
	loader  *cache.Loader
	retrier *retry.Retrier
	cb      *circuitbreaker.CircuitBreaker
	timeout time.Duration
	logger  *zap.Logger
}

var _ Source = (*Fetcher)(nil)

// NewFetcher собирает Fetcher. store может быть nil, тогда загрузка идет без кэша
func NewFetcher(source Source, store cache.Store, cfg FetcherConfig) *Fetcher {
	log := logger.Component("media")

	cbConfig := circuitbreaker.DefaultConfig("media")
	// 404 на конкретный файл не говорит о недоступности медиасервиса
	cbConfig.IsFailure = retry.ShouldRetry

	f := &Fetcher{
		source: source,
		retrier: retry.New("media_fetch", log,
			retry.WithMaxAttempts(cfg.MaxAttempts),
			retry.WithInitialDelay(cfg.InitialDelay),
			retry.WithMaxDelay(cfg.MaxDelay),
			retry.WithRetryIf(retry.ShouldRetry),
		),
		cb:      circuitbreaker.NewCircuitBreaker(cbConfig),
		timeout: cfg.Timeout,
		logger:  log,
	}
	if store != nil {
		f.loader = cache.NewLoader(store)
	}
	return f
}

// State состояние circuit breaker медиасервиса
func (f *Fetcher) State() circuitbreaker.State {
	return f.cb.State()
}

// IsHealthy сообщает, пропускает ли breaker запросы к медиасервису
func (f *Fetcher) IsHealthy() bool {
	return f.cb.IsHealthy()
}

// Fetch возвращает байты медиафайла
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	ctx, span := tracing.StartSpan(ctx, "Media.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("media.url", url))

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var (
		data []byte
		err  error
	)
	if f.loader != nil {
		data, err = f.loader.Get(ctx, url, f.load(url))
	} else {
		data, err = f.load(url)(ctx)
	}
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("media.size", len(data)))
	return data, nil
}

func (f *Fetcher) load(url string) cache.LoadFunc {
	return func(ctx context.Context) ([]byte, error) {
		var data []byte
		err := f.retrier.Do(ctx, func(ctx context.Context) error {
			return f.cb.Execute(ctx, func(ctx context.Context) error {
				var fetchErr error
				data, fetchErr = f.source.Fetch(ctx, url)
				return fetchErr
			})
		})
		if err != nil {
			if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
				f.logger.Warn("Media service circuit is open", zap.String("url", url))
			}
			return nil, err
		}
		return data, nil
	}
}
