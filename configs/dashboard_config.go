package configs

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// секции dashboard.yml
type DashboardFileConfig struct {
	Backend     BackendConfig     `yaml:"backend"`
	Cache       CacheConfig       `yaml:"cache"`
	Auth        AuthConfig        `yaml:"auth"`
	HealthCheck HealthCheckConfig `yaml:"health_check"`
	Journal     JournalConfig     `yaml:"journal"`
}

// BackendConfig - куда и как ходит клиент backend API
type BackendConfig struct {
	BaseURL            string        `yaml:"base_url"`             // без /api/v1 на конце
	Timeout            time.Duration `yaml:"timeout"`              // общий таймаут http клиента
	MaxIdleConns       int           `yaml:"max_idle_conns"`       // keep-alive соединения на хост
	IdleConnTimeout    time.Duration `yaml:"idle_conn_timeout"`    // когда закрывать простаивающее соединение
	MinRequestInterval time.Duration `yaml:"min_request_interval"` // 0 - без ограничения частоты
	CacheTTL           time.Duration `yaml:"cache_ttl"`            // 0 - GET ответы не кэшируются
	BotName            string        `yaml:"bot_name"`             // телеграм бот для ссылок кандидатам
	ServiceToken       string        `yaml:"-"`                    // только из env BACKEND_SERVICE_TOKEN
}

// CacheConfig - in-memory кэш, если Redis не настроен
type CacheConfig struct {
	NumShards       int           `yaml:"num_shards"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// AuthConfig - внешний сервис авторизации.
// Пустой LoginURL включает dev режим: вход по кнопке без токена
type AuthConfig struct {
	LoginURL  string `yaml:"login_url"`
	LogoutURL string `yaml:"logout_url"`
	PublicURL string `yaml:"public_url"` // адрес самого дашборда для redirect_uri
}

type HealthCheckConfig struct {
	Interval       uint64        `yaml:"interval_seconds"` // период опроса backend
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// JournalConfig - очередь записей журнала действий операторов
type JournalConfig struct {
	QueueSize int `yaml:"queue_size"`
	BatchSize int `yaml:"batch_size"`
}

func DefaultDashboardFileConfig() *DashboardFileConfig {
	return &DashboardFileConfig{
		Backend: BackendConfig{
			BaseURL:         "http://localhost:8000",
			Timeout:         10 * time.Second,
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
			CacheTTL:        30 * time.Second,
			BotName:         "your_bot",
		},
		Cache: CacheConfig{
			NumShards:       16,
			CleanupInterval: time.Minute,
		},
		Auth: AuthConfig{
			PublicURL: "http://localhost:8080",
		},
		HealthCheck: HealthCheckConfig{
			Interval:       30,
			RequestTimeout: 5 * time.Second,
		},
		Journal: JournalConfig{
			QueueSize: 1000,
			BatchSize: 50,
		},
	}
}

// Validate проверяет то, без чего дашборд не сможет работать
func (c *DashboardFileConfig) Validate() error {
	var errs []string

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "backend.base_url must be an absolute URL")
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, "backend.timeout must be positive")
	}
	if c.Backend.MinRequestInterval < 0 || c.Backend.CacheTTL < 0 {
		errs = append(errs, "backend.min_request_interval and backend.cache_ttl cannot be negative")
	}
	if strings.TrimSpace(c.Backend.BotName) == "" {
		errs = append(errs, "backend.bot_name is required")
	}
	if c.Cache.NumShards <= 0 {
		errs = append(errs, "cache.num_shards must be positive")
	}
	if c.Auth.LoginURL != "" && c.Auth.PublicURL == "" {
		errs = append(errs, "auth.public_url is required when auth.login_url is set")
	}
	if c.HealthCheck.Interval == 0 {
		errs = append(errs, "health_check.interval_seconds must be positive")
	}
	if c.Journal.QueueSize <= 0 || c.Journal.BatchSize <= 0 {
		errs = append(errs, "journal.queue_size and journal.batch_size must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// DevMode - вход без внешнего сервиса авторизации
func (a AuthConfig) DevMode() bool {
	return a.LoginURL == ""
}

// CallbackURL - куда сервис авторизации вернёт оператора с токеном
func (a AuthConfig) CallbackURL() string {
	return strings.TrimRight(a.PublicURL, "/") + "/auth/callback"
}
