package config

import "time"

// настройки circuit breaker для запросов к backend API
type CircuitBreakerConfig struct {
	FailureThreshold    uint32        `yaml:"failure_threshold"`      // сколько ошибок подряд открывают цепь
	SuccessThreshold    uint32        `yaml:"success_threshold"`      // сколько успехов в half-open закрывают цепь
	HalfOpenMaxRequests uint32        `yaml:"half_open_max_requests"` // сколько пробных запросов пускаем в half-open
	ResetTimeout        time.Duration `yaml:"reset_timeout"`          // через сколько open переходит в half-open
	WindowDuration      time.Duration `yaml:"window_duration"`        // окно, в котором считаются ошибки
}

func NewCircuitBreakerConfig(failureThreshold, successThreshold, halfOpenMaxRequests uint32, resetTimeout, windowDuration time.Duration) *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		FailureThreshold:    failureThreshold,
		SuccessThreshold:    successThreshold,
		HalfOpenMaxRequests: halfOpenMaxRequests,
		ResetTimeout:        resetTimeout,
		WindowDuration:      windowDuration,
	}
}

func UseDefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return NewCircuitBreakerConfig(5, 2, 1, 10*time.Second, time.Minute)
}
