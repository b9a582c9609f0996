package config

import "time"

type CookieManagerConfig struct {
	Domain        string        `yaml:"domain"`          // Domain для production (пустая строка для localhost)
	ProjectMode   string        `yaml:"project_mode"`    // Режим работы: production, staging, development
	Secure        bool          `yaml:"secure"`          // Secure flag (true в production)
	SameSite      string        `yaml:"same_site"`       // SameSite режим: lax, strict, none
	DefaultPath   string        `yaml:"default_path"`    // Путь по умолчанию для кук
	SessionMaxAge time.Duration `yaml:"session_max_age"` // срок сессии, если в токене нет exp
	Prefix        string        `yaml:"prefix"`          // Префикс для имен кук (опционально)
}

// DefaultCookieConfig возвращает конфиг по умолчанию
func DefaultCookieConfig() *CookieManagerConfig {
	return &CookieManagerConfig{
		ProjectMode:   "development",
		SameSite:      "lax",
		DefaultPath:   "/",
		Secure:        false,
		SessionMaxAge: 24 * time.Hour,
	}
}
