package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errTest = errors.New("test error")

func fastRetrier(opts ...Option) *Retrier {
	base := []Option{WithInitialDelay(time.Millisecond), WithMaxDelay(5 * time.Millisecond)}
	return New("test", zap.NewNop(), append(base, opts...)...)
}

func TestRetrier_Do(t *testing.T) {
	tests := []struct {
		name          string
		opts          []Option
		operation     func(attempt int) error
		cancelBefore  bool
		wantErr       error
		wantAttempt   int
		expectedCalls int
	}{
		{
			name:          "success on first attempt",
			operation:     func(int) error { return nil },
			expectedCalls: 1,
		},
		{
			name: "success after retry",
			operation: func(attempt int) error {
				if attempt < 2 {
					return errTest
				}
				return nil
			},
			expectedCalls: 2,
		},
		{
			name:          "max attempts reached",
			operation:     func(int) error { return errTest },
			wantErr:       errTest,
			wantAttempt:   3,
			expectedCalls: 3,
		},
		{
			name:          "permanent error stops immediately",
			operation:     func(int) error { return Permanent(errTest) },
			wantErr:       errTest,
			wantAttempt:   1,
			expectedCalls: 1,
		},
		{
			name:          "error outside retryable list",
			opts:          []Option{WithRetryableErrors([]error{errTest})},
			operation:     func(int) error { return errors.New("other") },
			wantAttempt:   1,
			expectedCalls: 1,
		},
		{
			name:          "retry predicate rejects client errors",
			opts:          []Option{WithRetryIf(ShouldRetry)},
			operation:     func(int) error { return &StatusError{Service: "media", StatusCode: http.StatusNotFound} },
			wantAttempt:   1,
			expectedCalls: 1,
		},
		{
			name:          "retry predicate repeats server errors",
			opts:          []Option{WithRetryIf(ShouldRetry), WithMaxAttempts(2)},
			operation:     func(int) error { return &StatusError{Service: "media", StatusCode: http.StatusBadGateway} },
			wantAttempt:   2,
			expectedCalls: 2,
		},
		{
			name:          "context cancelled",
			cancelBefore:  true,
			operation:     func(int) error { return errTest },
			wantErr:       context.Canceled,
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			r := fastRetrier(tt.opts...)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancelBefore {
				cancel()
			}

			err := r.Do(ctx, func(ctx context.Context) error {
				calls++
				return tt.operation(calls)
			})

			assert.Equal(t, tt.expectedCalls, calls, "unexpected number of calls")

			if tt.wantErr == nil && tt.wantAttempt == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantAttempt > 0 {
				var retryErr *RetryError
				require.ErrorAs(t, err, &retryErr)
				assert.Equal(t, tt.wantAttempt, retryErr.Attempt)
				assert.False(t, IsPermanent(retryErr.OriginalError))
			}
		})
	}
}

func TestRetrier_Delay(t *testing.T) {
	tests := []struct {
		name          string
		initialDelay  time.Duration
		maxDelay      time.Duration
		backoffFactor float64
		attempt       int
		expected      time.Duration
	}{
		{"first attempt", 100 * time.Millisecond, time.Second, 2.0, 1, 100 * time.Millisecond},
		{"second attempt", 100 * time.Millisecond, time.Second, 2.0, 2, 200 * time.Millisecond},
		{"max delay reached", 100 * time.Millisecond, 300 * time.Millisecond, 2.0, 3, 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("test", nil,
				WithInitialDelay(tt.initialDelay),
				WithMaxDelay(tt.maxDelay),
				WithBackoffFactor(tt.backoffFactor),
			)
			assert.Equal(t, tt.expected, r.calculateDelay(tt.attempt))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		retryableErrors []error
		expected        bool
	}{
		{"nil error", nil, []error{errTest}, false},
		{"empty retryable errors", errTest, nil, true},
		{"retryable error", errTest, []error{errTest}, true},
		{"wrapped retryable error", fmt.Errorf("fetch: %w", errTest), []error{errTest}, true},
		{"non-retryable error", errors.New("other"), []error{errTest}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.err, tt.retryableErrors))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"server error", &StatusError{Service: "callback", StatusCode: 503}, true},
		{"too many requests", &StatusError{Service: "callback", StatusCode: 429}, true},
		{"bad request", &StatusError{Service: "callback", StatusCode: 400}, false},
		{"permanent server error", Permanent(&StatusError{Service: "callback", StatusCode: 500}), false},
		{"plain error", errTest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldRetry(tt.err))
		})
	}
}
