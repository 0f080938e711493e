package retry

import (
	"context"
	"strconv"
	"time"

	"presentation-service-go/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Operation представляет операцию, которую нужно повторить
type Operation func(ctx context.Context) error

// Retrier выполняет повторные попытки операции
type Retrier struct {
	config    *Config
	logger    *zap.Logger
	operation string
}

// New создает новый экземпляр Retrier
func New(operation string, logger *zap.Logger, opts ...Option) *Retrier {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Retrier{
		config:    config,
		logger:    logger,
		operation: operation,
	}
}

// Do выполняет операцию с повторными попытками.
// Ошибки, обернутые в Permanent, возвращаются сразу
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	start := time.Now()
	var lastErr error

	metrics.RetryCurrentAttempts.WithLabelValues(r.operation).Inc()
	defer metrics.RetryCurrentAttempts.WithLabelValues(r.operation).Dec()

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		attemptStr := strconv.Itoa(attempt)
		attemptStart := time.Now()

		err := op(ctx)
		metrics.RetryOperationDuration.WithLabelValues(
			r.operation,
			attemptStr,
			errorToStatus(err, ctx),
		).Observe(time.Since(attemptStart).Seconds())

		if err == nil {
			metrics.RetryAttemptsTotal.WithLabelValues(r.operation, attemptStr, "success").Inc()
			metrics.RetrySuccessRate.WithLabelValues(r.operation).Set(1 / float64(attempt))
			if attempt > 1 {
				r.logger.Info("operation succeeded after retry",
					zap.String("operation", r.operation),
					zap.Int("attempt", attempt),
					zap.Duration("total_duration", time.Since(start)),
				)
			}
			return nil
		}

		lastErr = err
		r.logger.Warn("retry attempt failed",
			zap.String("operation", r.operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		metrics.RetryAttemptsTotal.WithLabelValues(r.operation, attemptStr, "failed").Inc()
		metrics.RetryErrorsTotal.WithLabelValues(r.operation, classifyError(err, ctx), attemptStr).Inc()

		if ctx.Err() != nil {
			metrics.RetryAttemptsTotal.WithLabelValues(r.operation, attemptStr, "cancelled").Inc()
			return ctx.Err()
		}

		if !r.shouldRetry(err) {
			metrics.RetryAttemptsTotal.WithLabelValues(r.operation, attemptStr, "non_retryable").Inc()
			return &RetryError{
				Attempt:       attempt,
				OriginalError: unwrapPermanent(err),
			}
		}

		if attempt == r.config.MaxAttempts {
			break
		}

		delay := r.calculateDelay(attempt)
		metrics.RetryBackoffDuration.WithLabelValues(r.operation, attemptStr).Observe(delay.Seconds())

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			metrics.RetryAttemptsTotal.WithLabelValues(r.operation, attemptStr, "cancelled").Inc()
			return ctx.Err()
		case <-timer.C:
		}
	}

	metrics.RetrySuccessRate.WithLabelValues(r.operation).Set(0)

	if lastErr != nil {
		metrics.RetryAttemptsTotal.WithLabelValues(r.operation, strconv.Itoa(r.config.MaxAttempts), "max_attempts").Inc()
		return &RetryError{
			Attempt:       r.config.MaxAttempts,
			OriginalError: lastErr,
		}
	}

	return ErrMaxAttemptsReached
}

func (r *Retrier) shouldRetry(err error) bool {
	if IsPermanent(err) {
		return false
	}
	if r.config.RetryIf != nil {
		return r.config.RetryIf(err)
	}
	return IsRetryable(err, r.config.RetryableErrors)
}

// calculateDelay вычисляет задержку для следующей попытки
func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= r.config.BackoffFactor
	}

	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	return time.Duration(delay)
}

func errorToStatus(err error, ctx context.Context) string {
	if err == nil {
		return "success"
	}
	if ctx.Err() != nil {
		return "cancelled"
	}
	return "error"
}

func classifyError(err error, ctx context.Context) string {
	switch {
	case err == nil:
		return "none"
	case ctx.Err() != nil:
		return "context_cancelled"
	case IsPermanent(err):
		return "permanent"
	case IsTimeout(err):
		return "timeout"
	case IsConnectionError(err):
		return "connection"
	case IsValidationError(err):
		return "validation"
	default:
		return "unknown"
	}
}
