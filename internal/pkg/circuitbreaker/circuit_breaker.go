package circuitbreaker

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"presentation-service-go/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// State представляет состояние Circuit Breaker
type State int

const (
	StateClosed   State = iota // Нормальное состояние, запросы проходят
	StateOpen                  // Состояние отказа, запросы блокируются
	StateHalfOpen              // Тестовое состояние, пропускается часть запросов
)

var (
	// ErrCircuitOpen возвращается, когда Circuit Breaker находится в открытом состоянии
	ErrCircuitOpen = errors.New("circuit breaker is open")

	circuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current state of the circuit breaker (0: Closed, 1: Open, 2: Half-Open)",
		},
		[]string{"name", "pod_name", "namespace"},
	)

	circuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures detected by circuit breaker",
		},
		[]string{"name", "pod_name", "namespace"},
	)

	circuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests passed through circuit breaker",
		},
		[]string{"name", "pod_name", "namespace", "status"},
	)

	circuitBreakerRecoveryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "circuit_breaker_recovery_duration_seconds",
			Help:    "Time taken to recover from Open to Closed state",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"name", "pod_name", "namespace"},
	)
)

// Config содержит настройки для Circuit Breaker
type Config struct {
	Name             string        // Имя для идентификации в метриках
	FailureThreshold int           // Количество ошибок до перехода в состояние Open
	ResetTimeout     time.Duration // Время до перехода из Open в Half-Open
	HalfOpenMaxCalls int           // Максимальное количество запросов в состоянии Half-Open
	SuccessThreshold int           // Количество успешных запросов для перехода из Half-Open в Closed
	PodName          string        // Имя пода в Kubernetes
	Namespace        string        // Namespace в Kubernetes
	// IsFailure решает, считается ли ошибка отказом зависимости. По умолчанию любая ошибка
	IsFailure func(error) bool
}

// DefaultConfig возвращает настройки по умолчанию для зависимости с указанным именем
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		ResetTimeout:     10 * time.Second,
		HalfOpenMaxCalls: 2,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker
type CircuitBreaker struct {
	config Config
	state  State
	log    *zap.Logger

	failures        int
	lastStateChange time.Time
	successes       int
	halfOpenCalls   int
	openStartTime   time.Time

	mu sync.RWMutex
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker
func NewCircuitBreaker(config Config) *CircuitBreaker {
	if config.PodName == "" {
		config.PodName = os.Getenv("HOSTNAME")
	}
	if config.Namespace == "" {
		config.Namespace = os.Getenv("POD_NAMESPACE")
	}
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 1
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}

	cb := &CircuitBreaker{
		config:          config,
		state:           StateClosed,
		lastStateChange: time.Now(),
		log:             logger.Component("circuit_breaker").With(zap.String("name", config.Name)),
	}
	circuitBreakerState.With(cb.labels()).Set(float64(StateClosed))

	return cb
}

// Execute выполняет функцию с учетом состояния Circuit Breaker
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if !cb.allowRequest() {
		circuitBreakerRequests.WithLabelValues(cb.config.Name, cb.config.PodName, cb.config.Namespace, "rejected").Inc()
		return ErrCircuitOpen
	}

	err := fn(ctx)
	// отмена вызывающей стороной не говорит о состоянии зависимости
	if err != nil && ctx.Err() != nil {
		cb.releaseHalfOpenCall()
		circuitBreakerRequests.WithLabelValues(cb.config.Name, cb.config.PodName, cb.config.Namespace, "cancelled").Inc()
		return err
	}

	cb.handleResult(err)

	if err != nil {
		circuitBreakerRequests.WithLabelValues(cb.config.Name, cb.config.PodName, cb.config.Namespace, "failure").Inc()
		return err
	}

	circuitBreakerRequests.WithLabelValues(cb.config.Name, cb.config.PodName, cb.config.Namespace, "success").Inc()
	return nil
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.lastStateChange) > cb.config.ResetTimeout {
			cb.toHalfOpen()
			cb.halfOpenCalls++
			return true
		}
		return false
	case StateHalfOpen:
		if cb.halfOpenCalls >= cb.config.HalfOpenMaxCalls {
			return false
		}
		cb.halfOpenCalls++
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) releaseHalfOpenCall() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateHalfOpen && cb.halfOpenCalls > 0 {
		cb.halfOpenCalls--
	}
}

func (cb *CircuitBreaker) handleResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil && (cb.config.IsFailure == nil || cb.config.IsFailure(err)) {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
}

func (cb *CircuitBreaker) onFailure() {
	circuitBreakerFailures.WithLabelValues(cb.config.Name, cb.config.PodName, cb.config.Namespace).Inc()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.FailureThreshold {
			cb.toOpen()
		}
	case StateHalfOpen:
		cb.toOpen()
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.toClosed()
		}
	}
}

func (cb *CircuitBreaker) toOpen() {
	cb.setState(StateOpen)
	cb.openStartTime = time.Now()
	cb.log.Warn("circuit breaker opened", zap.Duration("reset_timeout", cb.config.ResetTimeout))
}

func (cb *CircuitBreaker) toHalfOpen() {
	cb.setState(StateHalfOpen)
	cb.log.Info("circuit breaker half-open")
}

func (cb *CircuitBreaker) toClosed() {
	cb.setState(StateClosed)
	if !cb.openStartTime.IsZero() {
		recovery := time.Since(cb.openStartTime)
		circuitBreakerRecoveryTime.With(cb.labels()).Observe(recovery.Seconds())
		cb.openStartTime = time.Time{}
		cb.log.Info("circuit breaker closed", zap.Duration("recovery_time", recovery))
	}
}

func (cb *CircuitBreaker) setState(state State) {
	cb.state = state
	cb.lastStateChange = time.Now()
	cb.failures = 0
	cb.successes = 0
	cb.halfOpenCalls = 0
	circuitBreakerState.With(cb.labels()).Set(float64(state))
}

func (cb *CircuitBreaker) labels() prometheus.Labels {
	return prometheus.Labels{
		"name":      cb.config.Name,
		"pod_name":  cb.config.PodName,
		"namespace": cb.config.Namespace,
	}
}

// Name возвращает имя защищаемой зависимости
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// State возвращает текущее состояние Circuit Breaker
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsHealthy возвращает true, если Circuit Breaker пропускает запросы
func (cb *CircuitBreaker) IsHealthy() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state == StateClosed || (cb.state == StateHalfOpen && cb.halfOpenCalls < cb.config.HalfOpenMaxCalls)
}

// String возвращает строковое представление состояния
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateHalfOpen:
		return "HalfOpen"
	default:
		return "Unknown"
	}
}
