// конфиг подключения к PostgreSQL, где хранится журнал действий операторов
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// структура конфига для базы
type PostgresDBConfig struct {
	DSN string

	MaxConns int32
	MinConns int32

	HealthCheckPeriod time.Duration
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration

	ConnectTimeout time.Duration
}

// NewPostgresDBConfigFromEnv создает конфиг PostgreSQL из переменных окружения.
// Если DB_HOST не задан, база считается не настроенной: возвращается (nil, nil),
// и журнал пишется только в лог.
func NewPostgresDBConfigFromEnv() (*PostgresDBConfig, error) {
	if os.Getenv("DB_HOST") == "" {
		return nil, nil
	}

	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	user, err := getRequiredEnv("DB_USER")
	collect(err)
	password, err := getRequiredEnv("DB_PASSWORD")
	collect(err)
	dbName, err := getRequiredEnv("DB_NAME")
	collect(err)

	if len(errs) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(errs, ", "))
	}

	dsn := buildDSN(
		os.Getenv("DB_HOST"),
		getEnvWithDefault("DB_PORT", "5432"),
		user, password, dbName,
		getEnvWithDefault("DB_SSL_MODE", "disable"),
	)

	maxConns, err := getEnvAsInt32WithValidation("DB_MAX_CONNS", 5, 1, 100)
	collect(err)
	minConns, err := getEnvAsInt32WithValidation("DB_MIN_CONNS", 1, 0, 50)
	collect(err)
	if minConns > maxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS (%d) cannot be greater than DB_MAX_CONNS (%d)", minConns, maxConns))
	}

	healthCheckPeriod, err := getEnvAsDurationWithValidation("DB_HEALTH_CHECK_PERIOD", time.Minute, time.Second, 5*time.Minute)
	collect(err)
	maxConnLifetime, err := getEnvAsDurationWithValidation("DB_MAX_CONN_LIFETIME", time.Hour, time.Second, 24*time.Hour)
	collect(err)
	maxConnIdleTime, err := getEnvAsDurationWithValidation("DB_MAX_CONN_IDLE_TIME", 30*time.Minute, time.Second, 24*time.Hour)
	collect(err)
	connectTimeout, err := getEnvAsDurationWithValidation("DB_CONNECT_TIMEOUT", 5*time.Second, time.Second, time.Minute)
	collect(err)

	if maxConnIdleTime > maxConnLifetime {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONN_IDLE_TIME (%v) cannot be greater than DB_MAX_CONN_LIFETIME (%v)", maxConnIdleTime, maxConnLifetime))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n%s", strings.Join(errs, "\n"))
	}

	return &PostgresDBConfig{
		DSN:               dsn,
		MaxConns:          maxConns,
		MinConns:          minConns,
		HealthCheckPeriod: healthCheckPeriod,
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		ConnectTimeout:    connectTimeout,
	}, nil
}

// buildDSN собирает DSN строку из компонентов
func buildDSN(host, port, user, password, dbName, sslMode string) string {
	return strings.Join([]string{
		"host=" + host,
		"port=" + port,
		"user=" + user,
		"password=" + password,
		"dbname=" + dbName,
		"sslmode=" + sslMode,
	}, " ")
}
