package jwt_service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// парсер без проверки подписи: ключа от токенов backend'а у дашборда нет,
// подпись проверяет сам backend на каждом запросе
var parser = jwt.NewParser(jwt.WithExpirationRequired())

// DecodeAccessToken разбирает токен без проверки подписи и проверяет
// структуру и срок действия относительно now
func DecodeAccessToken(tokenString string, now time.Time) (*AccessClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	if len(strings.Split(tokenString, ".")) != 3 {
		return nil, fmt.Errorf("%w: expected 3 parts", ErrMalformedToken)
	}

	token, _, err := parser.ParseUnverified(tokenString, &AccessClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrMalformedToken)
	}

	if claims.ExpiresAt == nil {
		return nil, ErrMissingExp
	}
	if !claims.ExpiresAt.Time.After(now) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// CheckBearerFormat достаёт токен из значения "Bearer <token>"
func CheckBearerFormat(authHeader string) (string, error) {
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return strings.TrimSpace(authHeader[len(prefix):]), nil
	}
	return "", fmt.Errorf("%w: invalid authorization header format", ErrMalformedToken)
}
