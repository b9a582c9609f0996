package backend_client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrNetwork      = errors.New("Network error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadResponse  = errors.New("invalid response body")
)

// APIError - ответ backend с кодом вне 2xx
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is позволяет сравнивать с ErrNotFound и ErrUnauthorized через errors.Is
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// IsUnauthorized - backend отказал в доступе (401 или 403)
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// поля, в которых backend кладёт текст ошибки, в порядке приоритета
var messagePaths = []string{"message", "error", "error.message", "detail", "detail.0.msg"}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Message: extractMessage(status, body)}
}

// extractMessage достаёт текст ошибки из тела ответа, если получится
func extractMessage(status int, body []byte) string {
	if len(body) > 0 && gjson.ValidBytes(body) {
		for _, path := range messagePaths {
			res := gjson.GetBytes(body, path)
			if res.Type == gjson.String && strings.TrimSpace(res.Str) != "" {
				return res.Str
			}
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}
