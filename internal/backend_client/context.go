package backend_client

import (
	"context"

	"github.com/qiniu/x/xlog"
)

type ctxKey int

const (
	tokenKey ctxKey = iota
	loggerKey
)

var defaultLogger = xlog.New("backend client")

// WithToken кладёт токен оператора в контекст запроса к backend
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithLogger - логгер запроса дашборда, чтобы вызовы backend шли с тем же request id
func WithLogger(ctx context.Context, xl *xlog.Logger) context.Context {
	if xl == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey, xl)
}

func loggerFrom(ctx context.Context) *xlog.Logger {
	if xl, ok := ctx.Value(loggerKey).(*xlog.Logger); ok {
		return xl
	}
	return defaultLogger
}
