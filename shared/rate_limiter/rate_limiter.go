package rate_limiter

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrStopped = errors.New("rate limiter stopped")

// RateLimiter - то, что нужно клиенту backend API: дождаться разрешения на запрос
type RateLimiter interface {
	Wait(ctx context.Context) error
	Stop()
}

// rate limiter на канале: тикер раз в rate кладёт токен в буфер на один элемент,
// так что пропущенные тики не копятся
type ChannelRateLimiter struct {
	limiter chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	stopped bool
	rate    time.Duration
}

var _ RateLimiter = (*ChannelRateLimiter)(nil)

// конструктор rate limiter с интервалом между запросами
func NewChannelRateLimiter(rate time.Duration) (*ChannelRateLimiter, error) {
	if rate <= 0 {
		return nil, errors.New("rate must be greater than zero")
	}

	ctx, cancel := context.WithCancel(context.Background())
	rl := &ChannelRateLimiter{
		limiter: make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
		rate:    rate,
	}

	go rl.run()

	return rl, nil
}

func (rl *ChannelRateLimiter) run() {
	ticker := time.NewTicker(rl.rate)
	defer ticker.Stop()

	for {
		select {
		case <-rl.ctx.Done():
			return
		case <-ticker.C:
			rl.mu.RLock()
			if rl.stopped {
				rl.mu.RUnlock()
				return
			}
			select {
			case rl.limiter <- struct{}{}:
			default:
				// токен уже лежит
			}
			rl.mu.RUnlock()
		}
	}
}

// Wait блокируется до появления токена, отмены ctx или остановки лимитера
func (rl *ChannelRateLimiter) Wait(ctx context.Context) error {
	rl.mu.RLock()
	stopped := rl.stopped
	rl.mu.RUnlock()

	if stopped {
		return ErrStopped
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-rl.ctx.Done():
		return ErrStopped
	case _, ok := <-rl.limiter:
		if !ok {
			return ErrStopped
		}
		return nil
	}
}

// Stop останавливает лимитер, повторный вызов безопасен
func (rl *ChannelRateLimiter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.stopped {
		rl.stopped = true
		rl.cancel()
		close(rl.limiter)
	}
}
