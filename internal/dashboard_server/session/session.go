// сессия оператора на куках: токен backend, флаг входа, flash сообщения
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	globalmodels "hr_dashboard/global_models"
	"hr_dashboard/global_models/global_cookie"
	"hr_dashboard/shared/jwt_service"
	"hr_dashboard/shared/middleware"
)

const (
	tokenCookie    = "auth_token"
	authFlagCookie = "is_authenticated"
	operatorCookie = "operator"

	sessionKey = "session"

	// оператор в dev режиме, когда токена нет
	DevOperator = "dev"
)

// Session - кто делает запрос. Token пустой в dev режиме
type Session struct {
	Token    string
	Operator string
}

type Manager struct {
	cookies       global_cookie.CookieManagerInterface
	sessionMaxAge time.Duration
	now           func() time.Time
}

func NewManager(cookies global_cookie.CookieManagerInterface, sessionMaxAge time.Duration) *Manager {
	if sessionMaxAge <= 0 {
		sessionMaxAge = 24 * time.Hour
	}
	return &Manager{
		cookies:       cookies,
		sessionMaxAge: sessionMaxAge,
		now:           time.Now,
	}
}

// Login сохраняет токен из сервиса авторизации. Кука живёт не дольше токена
func (m *Manager) Login(c *gin.Context, token string) error {
	claims, err := jwt_service.DecodeAccessToken(token, m.now())
	if err != nil {
		return err
	}

	maxAge := int(claims.ExpiresIn(m.now()).Seconds())
	if maxAge <= 0 {
		return jwt_service.ErrTokenExpired
	}

	operator := claims.Operator()
	if operator == "" {
		operator = "unknown"
	}

	if err := m.set(c, tokenCookie, token, maxAge); err != nil {
		return err
	}
	if err := m.set(c, operatorCookie, operator, maxAge); err != nil {
		return err
	}
	return m.set(c, authFlagCookie, "true", maxAge)
}

// LoginDev - вход без сервиса авторизации, только флаг
func (m *Manager) LoginDev(c *gin.Context) error {
	maxAge := int(m.sessionMaxAge.Seconds())
	if err := m.set(c, operatorCookie, DevOperator, maxAge); err != nil {
		return err
	}
	return m.set(c, authFlagCookie, "true", maxAge)
}

// Logout стирает все куки сессии
func (m *Manager) Logout(c *gin.Context) {
	m.cookies.DeleteCookie(c, tokenCookie, "")
	m.cookies.DeleteCookie(c, operatorCookie, "")
	m.cookies.DeleteCookie(c, authFlagCookie, "")
}

// Current читает сессию из кук или из заголовка Authorization.
// Протухший или битый токен - сессии нет
func (m *Manager) Current(c *gin.Context) (Session, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, err := jwt_service.CheckBearerFormat(header)
		if err != nil {
			return Session{}, false
		}
		return m.fromToken(token)
	}

	if flag, err := m.cookies.GetCookie(c, authFlagCookie); err != nil || flag != "true" {
		return Session{}, false
	}

	token, err := m.cookies.GetCookie(c, tokenCookie)
	if err != nil || token == "" {
		operator, _ := m.cookies.GetCookie(c, operatorCookie)
		if operator == "" {
			operator = DevOperator
		}
		return Session{Operator: operator}, true
	}
	return m.fromToken(token)
}

func (m *Manager) fromToken(token string) (Session, bool) {
	claims, err := jwt_service.DecodeAccessToken(token, m.now())
	if err != nil {
		return Session{}, false
	}
	return Session{Token: token, Operator: claims.Operator()}, true
}

// AuthGuard пускает дальше только с сессией, иначе на /login.
// Сессия кладётся в контекст gin
func (m *Manager) AuthGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := m.Current(c)
		if !ok {
			middleware.Logger(c).Infof("no session for %s, redirect to /login", c.Request.URL.Path)
			m.Logout(c)
			redirectToLogin(c)
			c.Abort()
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// FromContext - сессия, которую положил AuthGuard
func FromContext(c *gin.Context) Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return Session{}
}

// redirectToLogin - GET редиректим как обычно, после POST - 303, чтобы браузер пришёл GET'ом
func redirectToLogin(c *gin.Context) {
	code := http.StatusFound
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		code = http.StatusSeeOther
	}
	c.Redirect(code, "/login")
}

func (m *Manager) set(c *gin.Context, name, value string, maxAge int) error {
	return m.cookies.SetCookie(c, globalmodels.CookieOptions{
		Name:   name,
		Value:  value,
		MaxAge: maxAge,
	})
}

// Expire - сессия больше не действует (backend ответил 401/403)
func (m *Manager) Expire(c *gin.Context) {
	m.Logout(c)
	_ = m.SetFlash(c, FlashError, "Сессия истекла, войдите снова")
	redirectToLogin(c)
	c.Abort()
}

// sanitize убирает переводы строк, чтобы сообщение не ломало заголовок Set-Cookie
func sanitize(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
