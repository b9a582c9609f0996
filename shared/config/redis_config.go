package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// структура конфига для Redis (кэш ответов backend API)
type RedisConfig struct {
	Host            string
	Port            string
	Password        string
	DB              int32         // номер базы 0-15
	PoolSize        int32         // максимум одновременных TCP-соединений
	MinIdleConns    int32         // сколько соединений держать открытыми
	MaxRetries      int32         // повторы при временных сетевых сбоях
	DialTimeout     time.Duration // установка нового соединения
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration // закрытие простаивающего соединения
	PoolTimeout     time.Duration // ожидание свободного соединения из пула
	MaxConnAge      time.Duration
	MinRetryBackOff time.Duration
	MaxRetryBackOff time.Duration
}

// NewRedisConfigFromEnv создает конфиг Redis из переменных окружения.
// Без REDIS_HOST возвращает (nil, nil): дашборд кэширует в памяти процесса.
func NewRedisConfigFromEnv() (*RedisConfig, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil, nil
	}

	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	dbNum, err := getEnvAsInt32WithValidation("REDIS_DB", 0, 0, 15)
	collect(err)
	poolSize, err := getEnvAsInt32WithValidation("REDIS_POOL_SIZE", 20, 1, 1000)
	collect(err)
	minIdleConns, err := getEnvAsInt32WithValidation("REDIS_MIN_IDLE_CONNS", 2, 0, 1000)
	collect(err)
	if minIdleConns > poolSize {
		errs = append(errs, fmt.Sprintf("REDIS_MIN_IDLE_CONNS (%d) cannot be greater than REDIS_POOL_SIZE (%d)", minIdleConns, poolSize))
	}
	maxRetries, err := getEnvAsInt32WithValidation("REDIS_MAX_RETRIES", 2, 0, 3)
	collect(err)

	dialTimeout, err := getEnvAsDurationWithValidation("REDIS_DIAL_TIMEOUT", 5*time.Second, time.Second, 30*time.Second)
	collect(err)
	readTimeout, err := getEnvAsDurationWithValidation("REDIS_READ_TIMEOUT", 3*time.Second, 100*time.Millisecond, 30*time.Second)
	collect(err)
	writeTimeout, err := getEnvAsDurationWithValidation("REDIS_WRITE_TIMEOUT", 3*time.Second, 100*time.Millisecond, 30*time.Second)
	collect(err)
	idleTimeout, err := getEnvAsDurationWithValidation("REDIS_IDLE_TIMEOUT", 5*time.Minute, time.Minute, 24*time.Hour)
	collect(err)
	poolTimeout, err := getEnvAsDurationWithValidation("REDIS_POOL_TIMEOUT", 4*time.Second, time.Second, time.Minute)
	collect(err)
	maxConnAge, err := getEnvAsDurationWithValidation("REDIS_MAX_CON_AGE", 30*time.Minute, 10*time.Minute, time.Hour)
	collect(err)
	minRetryBackoff, err := getEnvAsDurationWithValidation("REDIS_MIN_RETRY_BACKOFF", 100*time.Millisecond, 50*time.Millisecond, 300*time.Millisecond)
	collect(err)
	maxRetryBackoff, err := getEnvAsDurationWithValidation("REDIS_MAX_RETRY_BACKOFF", time.Second, 512*time.Millisecond, 2*time.Second)
	collect(err)

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n%s", strings.Join(errs, "\n"))
	}

	return &RedisConfig{
		Host:            host,
		Port:            getEnvWithDefault("REDIS_PORT", "6379"),
		Password:        os.Getenv("REDIS_PASSWORD"),
		DB:              dbNum,
		PoolSize:        poolSize,
		MinIdleConns:    minIdleConns,
		MaxRetries:      maxRetries,
		DialTimeout:     dialTimeout,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		PoolTimeout:     poolTimeout,
		MaxConnAge:      maxConnAge,
		MinRetryBackOff: minRetryBackoff,
		MaxRetryBackOff: maxRetryBackoff,
	}, nil
}

// для создания клиента redis необходимо передать указатель на структуру опций: *redis.Options
func (r *RedisConfig) ToRedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     r.Host + ":" + r.Port,
		Password: r.Password,
		DB:       int(r.DB),

		PoolSize:     int(r.PoolSize),
		MinIdleConns: int(r.MinIdleConns),
		IdleTimeout:  r.IdleTimeout,
		PoolTimeout:  r.PoolTimeout,
		MaxConnAge:   r.MaxConnAge,

		DialTimeout:  r.DialTimeout,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,

		MaxRetries:      int(r.MaxRetries),
		MinRetryBackoff: r.MinRetryBackOff,
		MaxRetryBackoff: r.MaxRetryBackOff,
	}
}
