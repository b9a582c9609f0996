package jwt_service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("какой-то чужой ключ"))
	require.NoError(t, err)
	return token
}

func TestDecodeAccessToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("валидный токен", func(t *testing.T) {
		token := signToken(t, AccessClaims{
			Email:     "hr@example.com",
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		})

		claims, err := DecodeAccessToken(token, now)
		require.NoError(t, err)
		assert.Equal(t, "hr@example.com", claims.Email)
		assert.Equal(t, "hr@example.com", claims.Operator())
		assert.Equal(t, time.Hour, claims.ExpiresIn(now))
	})

	t.Run("оператор по sub, если нет email", func(t *testing.T) {
		token := signToken(t, jwt.RegisteredClaims{
			Subject:   "operator-7",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		})
		claims, err := DecodeAccessToken(token, now)
		require.NoError(t, err)
		assert.Equal(t, "operator-7", claims.Operator())
	})

	t.Run("пустая строка", func(t *testing.T) {
		_, err := DecodeAccessToken("  ", now)
		assert.ErrorIs(t, err, ErrEmptyToken)
	})

	t.Run("не три части", func(t *testing.T) {
		_, err := DecodeAccessToken("abc.def", now)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("мусор в base64", func(t *testing.T) {
		_, err := DecodeAccessToken("###.###.###", now)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("нет exp", func(t *testing.T) {
		token := signToken(t, jwt.RegisteredClaims{Subject: "1"})
		_, err := DecodeAccessToken(token, now)
		assert.ErrorIs(t, err, ErrMissingExp)
	})

	t.Run("истёкший токен", func(t *testing.T) {
		token := signToken(t, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second)),
		})
		_, err := DecodeAccessToken(token, now)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestCheckBearerFormat(t *testing.T) {
	token, err := CheckBearerFormat("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = CheckBearerFormat("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = CheckBearerFormat("Basic abc")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = CheckBearerFormat("Bearer ")
	assert.Error(t, err)
}
