package circuitbreaker

import (
	"time"
)

// Execute выполняет операцию с защитой Circuit Breaker.
// Ошибка fn возвращается как есть, даже если она не считается сбоем.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	halfOpen, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = fn()
	cb.afterRequest(halfOpen, err)
	return err
}

// beforeRequest решает, пропускать ли запрос, и резервирует слот в Half-Open
func (cb *CircuitBreaker) beforeRequest() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if time.Since(cb.lastFailureTime) < cb.resetTimeout {
			return false, ErrCircuitOpen
		}
		cb.state = StateHalfOpen
		cb.halfOpenAttempts = 0
		cb.successes = 0
	}

	if cb.state == StateHalfOpen {
		if cb.halfOpenAttempts >= cb.halfOpenMaxRequests {
			return false, ErrTooManyRequests
		}
		cb.halfOpenAttempts++
		cb.totalRequests++
		return true, nil
	}

	cb.totalRequests++
	return false, nil
}

func (cb *CircuitBreaker) afterRequest(halfOpen bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	failed := err != nil && cb.isFailure(err)
	if failed {
		cb.totalFailures++
	} else {
		cb.totalSuccesses++
	}

	if halfOpen {
		// пока запрос выполнялся, состояние успели поменять другие вызовы
		if cb.state != StateHalfOpen {
			return
		}
		// halfOpenAttempts считает только запросы в полёте
		cb.halfOpenAttempts--
	}

	if failed {
		cb.onFailure()
		return
	}
	cb.onSuccess()
}

// onFailure обрабатывает неудачное выполнение, мьютекс захвачен вызывающим
func (cb *CircuitBreaker) onFailure() {
	now := time.Now()

	switch cb.state {
	case StateClosed:
		if cb.failures == 0 || now.Sub(cb.firstFailureTime) > cb.windowDuration {
			cb.failures = 0
			cb.firstFailureTime = now
		}
		cb.failures++
		if cb.failures >= cb.failureThreshold {
			cb.state = StateOpen
			cb.lastFailureTime = now
			cb.failures = 0
		}

	case StateHalfOpen:
		// в пробном режиме одной ошибки достаточно
		cb.state = StateOpen
		cb.lastFailureTime = now
		cb.halfOpenAttempts = 0
		cb.successes = 0
	}
}

// onSuccess обрабатывает удачное выполнение, мьютекс захвачен вызывающим
func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.successThreshold {
			cb.state = StateClosed
			cb.failures = 0
			cb.successes = 0
			cb.halfOpenAttempts = 0
		}
	}
}

// State возвращает текущее состояние
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// GetStats возвращает статистику
func (cb *CircuitBreaker) GetStats() (total, success, failure uint32) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.totalRequests, cb.totalSuccesses, cb.totalFailures
}
