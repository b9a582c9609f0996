package toolkit

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware выставляет заголовки для HTML страниц дашборда:
// запрет встраивания во фреймы, запрет кэширования страниц с персональными данными
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self' https:")

		// статику кэшировать можно, страницы - нет
		if !strings.HasPrefix(c.Request.URL.Path, "/static/") {
			h.Set("Cache-Control", "no-store")
		}

		c.Next()
	}
}
