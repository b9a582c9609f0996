package jwt_service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyToken     = errors.New("empty token string")
	ErrMalformedToken = errors.New("malformed token")
	ErrMissingExp     = errors.New("token missing exp claim")
	ErrTokenExpired   = errors.New("token expired")
)

// AccessClaims - то, что дашборд читает из access токена backend'а.
// Поля кроме exp опциональны: разные инсталляции auth сервиса кладут разное
type AccessClaims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// ExpiresIn - сколько токену осталось жить относительно now
func (c *AccessClaims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}

// Operator - как подписать оператора в журнале: email, иначе sub
func (c *AccessClaims) Operator() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}
