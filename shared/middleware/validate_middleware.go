package middleware

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator"
)

const ValidatedDataKey = "validatedData"

// создаём экзмепляр валидатора (чтобы он создавался в памяти только при загрузке модуля)
var validate = validator.New()

// ValidationFailed решает, что ответить, если запрос не прошёл разбор или валидацию.
// errs == nil значит, что тело вообще не разобралось
type ValidationFailed func(c *gin.Context, errs map[string]string)

// RespondJSON - ответ по умолчанию: 400 с описанием полей
func RespondJSON(c *gin.Context, errs map[string]string) {
	if errs == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Validation failed",
		"details": errs,
	})
}

// ValidateMiddleware разбирает запрос в новый экземпляр model через bind
// (form, query, uri или JSON), прогоняет validator и кладёт результат в контекст
func ValidateMiddleware(model interface{}, bind binding.Binding, onFail ValidationFailed) gin.HandlerFunc {
	modelType := reflect.TypeOf(model).Elem()
	if onFail == nil {
		onFail = RespondJSON
	}

	return func(c *gin.Context) {
		request := reflect.New(modelType).Interface()

		// uri параметры живут в c.Params, а не в теле запроса
		if err := c.ShouldBindUri(request); err != nil {
			onFail(c, nil)
			c.Abort()
			return
		}
		if bind != nil {
			if err := c.ShouldBindWith(request, bind); err != nil {
				onFail(c, nil)
				c.Abort()
				return
			}
		}

		if err := validate.Struct(request); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				onFail(c, nil)
				c.Abort()
				return
			}
			errs := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				errs[fe.Field()] = fe.Tag()
			}
			onFail(c, errs)
			c.Abort()
			return
		}

		c.Set(ValidatedDataKey, request)
		c.Next()
	}
}
