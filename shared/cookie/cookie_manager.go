// куки сессии оператора дашборда
package cookie

import (
	"errors"
	"fmt"
	"net/http"

	globalmodels "hr_dashboard/global_models"
	"hr_dashboard/global_models/global_cookie"
	"hr_dashboard/shared/config"

	"github.com/gin-gonic/gin"
)

var _ global_cookie.CookieManagerInterface = (*Manager)(nil)

var ErrEmptyName = errors.New("cookie name must not be empty")

// Manager ставит и читает куки с общими для дашборда атрибутами
// (домен, SameSite, Secure, префикс) из конфига
type Manager struct {
	config config.CookieManagerConfig
}

func NewManager(config config.CookieManagerConfig) *Manager {
	return &Manager{config: config}
}

// SetCookie ставит куку. HttpOnly включён, если в opts явно не сказано иное
func (m *Manager) SetCookie(c *gin.Context, opts globalmodels.CookieOptions) error {
	if opts.Name == "" {
		return ErrEmptyName
	}

	httpOnly := true
	if opts.HttpOnly != nil {
		httpOnly = *opts.HttpOnly
	}
	m.write(c, opts.Name, opts.Value, opts.MaxAge, opts.Path, httpOnly)
	return nil
}

// GetCookie - значение куки, http.ErrNoCookie внутри, если её нет
func (m *Manager) GetCookie(c *gin.Context, name string) (string, error) {
	value, err := c.Cookie(m.fullName(name))
	if err != nil {
		return "", fmt.Errorf("cookie %s: %w", m.fullName(name), err)
	}
	return value, nil
}

// DeleteCookie стирает куку: пустое значение и отрицательный MaxAge
func (m *Manager) DeleteCookie(c *gin.Context, name, path string) {
	m.write(c, name, "", -1, path, true)
}

// write - единственное место, где кука уходит в ответ
func (m *Manager) write(c *gin.Context, name, value string, maxAge int, path string, httpOnly bool) {
	if path == "" {
		path = m.config.DefaultPath
	}
	c.SetSameSite(m.parseSameSite())
	c.SetCookie(m.fullName(name), value, maxAge, path, m.getDomain(), m.config.Secure, httpOnly)
}

// префикс нужен, если на одном домене живут несколько приложений
func (m *Manager) fullName(name string) string {
	if m.config.Prefix == "" {
		return name
	}
	return m.config.Prefix + "_" + name
}

// домен ставим только в production, на localhost браузер его не примет
func (m *Manager) getDomain() string {
	if m.config.ProjectMode == "production" {
		return m.config.Domain
	}
	return ""
}

func (m *Manager) parseSameSite() http.SameSite {
	switch m.config.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
