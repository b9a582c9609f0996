package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"hr_dashboard/shared/config"
)

// Состояния Circuit Breaker
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// Структура Circuit Breaker, которая защищает дашборд от долбёжки упавшего backend
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold    uint32        // ошибок подряд до перехода в Open
	successThreshold    uint32        // успехов в Half-Open для перехода в Closed
	halfOpenMaxRequests uint32        // пробных запросов в Half-Open
	resetTimeout        time.Duration // сколько ждём перед Half-Open
	windowDuration      time.Duration // ошибки старше окна не копятся

	// isFailure решает, считать ли ошибку поломкой зависимости.
	// Например, 404 от backend - это ответ, а не сбой.
	isFailure func(error) bool

	state            State
	failures         uint32
	successes        uint32
	firstFailureTime time.Time
	lastFailureTime  time.Time
	halfOpenAttempts uint32

	// Статистика
	totalRequests  uint32
	totalSuccesses uint32
	totalFailures  uint32
}

// Option - функциональная опция конструктора
type Option func(*CircuitBreaker)

// WithFailureClassifier задаёт функцию, отделяющую сбои от обычных ошибок
func WithFailureClassifier(fn func(error) bool) Option {
	return func(cb *CircuitBreaker) {
		if fn != nil {
			cb.isFailure = fn
		}
	}
}

func NewCircuitBreaker(cfg *config.CircuitBreakerConfig, opts ...Option) *CircuitBreaker {
	if cfg == nil {
		cfg = config.UseDefaultCircuitBreakerConfig()
	}

	cb := &CircuitBreaker{
		failureThreshold:    cfg.FailureThreshold,
		successThreshold:    cfg.SuccessThreshold,
		halfOpenMaxRequests: cfg.HalfOpenMaxRequests,
		resetTimeout:        cfg.ResetTimeout,
		windowDuration:      cfg.WindowDuration,
		isFailure:           func(err error) bool { return err != nil },
		state:               StateClosed,
	}

	if cb.failureThreshold == 0 {
		cb.failureThreshold = 5
	}
	if cb.successThreshold == 0 {
		cb.successThreshold = 3
	}
	if cb.halfOpenMaxRequests == 0 {
		cb.halfOpenMaxRequests = 2
	}
	if cb.resetTimeout <= 0 {
		cb.resetTimeout = 10 * time.Second
	}
	if cb.windowDuration <= 0 {
		cb.windowDuration = 10 * time.Second
	}

	for _, opt := range opts {
		opt(cb)
	}

	return cb
}
