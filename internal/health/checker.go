// периодическая проверка доступности backend API
package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/qiniu/x/xlog"

	"hr_dashboard/configs"
)

// Pinger - то, что умеет проверить backend (клиент backend API)
type Pinger interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// Status - результат последней проверки
type Status struct {
	Checked   bool          `json:"checked"` // false - проверок ещё не было
	Up        bool          `json:"up"`
	LastCheck time.Time     `json:"last_check"`
	Latency   time.Duration `json:"latency_ns"`
	Error     string        `json:"error,omitempty"`
}

// Checker опрашивает backend по расписанию gocron и хранит последний статус
type Checker struct {
	pinger   Pinger
	interval uint64
	timeout  time.Duration
	xl       *xlog.Logger

	mu     sync.RWMutex
	status Status

	scheduler *gocron.Scheduler
	stop      chan bool
}

func NewChecker(pinger Pinger, conf configs.HealthCheckConfig) (*Checker, error) {
	if pinger == nil {
		return nil, errors.New("pinger is nil")
	}
	if conf.Interval == 0 {
		return nil, errors.New("health check interval must be positive")
	}
	if conf.RequestTimeout <= 0 {
		conf.RequestTimeout = 5 * time.Second
	}

	return &Checker{
		pinger:   pinger,
		interval: conf.Interval,
		timeout:  conf.RequestTimeout,
		xl:       xlog.New("health"),
	}, nil
}

// Check делает одну проверку и сохраняет результат
func (c *Checker) Check(ctx context.Context) Status {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	latency, err := c.pinger.Ping(reqCtx)
	st := Status{
		Checked:   true,
		Up:        err == nil,
		LastCheck: time.Now(),
		Latency:   latency,
	}
	if err != nil {
		st.Error = err.Error()
	}

	c.mu.Lock()
	prev := c.status
	c.status = st
	c.mu.Unlock()

	switch {
	case !st.Up && (prev.Up || !prev.Checked):
		c.xl.Errorf("backend is down: %s", st.Error)
	case st.Up && prev.Checked && !prev.Up:
		c.xl.Infof("backend is back (latency %v)", latency)
	}
	return st
}

// Start проверяет backend сразу и дальше каждые interval секунд
func (c *Checker) Start() error {
	if c.scheduler != nil {
		return errors.New("health checker already started")
	}

	c.Check(context.Background())

	c.scheduler = gocron.NewScheduler()
	if err := c.scheduler.Every(c.interval).Seconds().Do(c.probe); err != nil {
		c.scheduler = nil
		return err
	}
	c.stop = c.scheduler.Start()
	return nil
}

func (c *Checker) probe() {
	c.Check(context.Background())
}

func (c *Checker) Stop() {
	if c.scheduler == nil {
		return
	}
	c.stop <- true
	c.scheduler.Clear()
	c.scheduler = nil
}

func (c *Checker) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// BackendDown - была хотя бы одна проверка, и последняя неудачная
func (c *Checker) BackendDown() bool {
	st := c.Status()
	return st.Checked && !st.Up
}
