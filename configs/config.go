// описание общего конфига дашборда
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"hr_dashboard/shared/config"
)

type DashboardConfig struct {
	*DashboardFileConfig
	ServerConf         *config.ServerConfig
	CookieConf         *config.CookieManagerConfig
	CircuitBreakerConf *config.CircuitBreakerConfig
	RedisConf          *config.RedisConfig      // nil - кэш в памяти
	PostgresDBConf     *config.PostgresDBConfig // nil - журнал только в лог
}

// загружаем конфиг-данные: .env (если есть), потом .yml файлы
func LoadConfig() (*DashboardConfig, error) {
	envFile := os.Getenv("DASHBOARD_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error during loading %s: %w", envFile, err)
	}

	// загружаем данные из .yml файла для самого дашборда
	fileConfig, err := config.LoadYAMLConfig[DashboardFileConfig](os.Getenv("DASHBOARD_CONFIG_ADDRESS_STRING"), DefaultDashboardFileConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading config: %w", err)
	}
	applyEnvOverrides(fileConfig)
	if err := fileConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dashboard config: %w", err)
	}

	serverConfig, err := config.LoadYAMLConfig[config.ServerConfig](os.Getenv("SERVER_CONFIG_ADDRESS_STRING"), config.UseDefaultServerConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading config: %w", err)
	}

	cookieConfig, err := config.LoadYAMLConfig[config.CookieManagerConfig](os.Getenv("COOKIE_CONFIG_ADDRESS_STRING"), config.DefaultCookieConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading config: %w", err)
	}

	cbConfig, err := config.LoadYAMLConfig[config.CircuitBreakerConfig](os.Getenv("CIRCUIT_BREAKER_CONFIG_ADDRESS_STRING"), config.UseDefaultCircuitBreakerConfig)
	if err != nil {
		return nil, fmt.Errorf("error during loading config: %w", err)
	}

	redisConfig, err := config.NewRedisConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error during loading redis config: %w", err)
	}

	postgresConfig, err := config.NewPostgresDBConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error during loading postgres config: %w", err)
	}

	return &DashboardConfig{
		DashboardFileConfig: fileConfig,
		ServerConf:          serverConfig,
		CookieConf:          cookieConfig,
		CircuitBreakerConf:  cbConfig,
		RedisConf:           redisConfig,
		PostgresDBConf:      postgresConfig,
	}, nil
}

// переменные окружения важнее .yml
func applyEnvOverrides(c *DashboardFileConfig) {
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_NAME"); v != "" {
		c.Backend.BotName = v
	}
	if v := os.Getenv("AUTH_LOGIN_URL"); v != "" {
		c.Auth.LoginURL = v
	}
	if v := os.Getenv("AUTH_LOGOUT_URL"); v != "" {
		c.Auth.LogoutURL = v
	}
	if v := os.Getenv("DASHBOARD_PUBLIC_URL"); v != "" {
		c.Auth.PublicURL = v
	}
	c.Backend.ServiceToken = os.Getenv("BACKEND_SERVICE_TOKEN")
}
