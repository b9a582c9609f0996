package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qiniu/x/xlog"
)

const (
	RequestIDHeader = "X-Request-ID"
	XLogKey         = "xlog"
	RequestIDKey    = "request_id"
)

// SetUpRequest назначает запросу id (берёт из X-Request-ID или генерирует),
// кладёт в контекст логгер xlog с этим id и пишет строку по завершении
func SetUpRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		xl := xlog.New(requestID)
		c.Set(XLogKey, xl)
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		xl.Infof("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Logger отдаёт логгер запроса, вне SetUpRequest - логгер без id
func Logger(c *gin.Context) *xlog.Logger {
	if val, ok := c.Get(XLogKey); ok {
		if xl, ok := val.(*xlog.Logger); ok {
			return xl
		}
	}
	return xlog.New("no-request-id")
}
