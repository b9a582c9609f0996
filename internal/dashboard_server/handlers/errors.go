package handlers

import (
	"context"
	"errors"
	"net/http"

	"hr_dashboard/internal/backend_client"
	"hr_dashboard/internal/dashboard_server/dto"
	"hr_dashboard/internal/dashboard_server/service"
	"hr_dashboard/shared/circuitbreaker"
)

const (
	bannerError   = "error"
	bannerSuccess = "success"
	bannerInfo    = "info"
)

// функция - маппер: ошибка загрузки или записи -> код ответа и текст уведомления
func ToBanner(err error) (int, dto.Banner) {
	var apiErr *backend_client.APIError

	switch {
	case errors.Is(err, service.ErrInvalidDraft):
		return http.StatusUnprocessableEntity, dto.Banner{
			Kind:    bannerError,
			Message: "Проверьте заполнение формы",
		}
	case errors.Is(err, backend_client.ErrNotFound):
		return http.StatusNotFound, dto.Banner{
			Kind:    bannerError,
			Message: "Запись не найдена",
		}
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable, dto.Banner{
			Kind:    bannerError,
			Message: "Сервер временно недоступен, попробуйте позже",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.Banner{
			Kind:    bannerError,
			Message: "Сервер не ответил вовремя",
		}
	case errors.Is(err, backend_client.ErrNetwork):
		return http.StatusBadGateway, dto.Banner{
			Kind:    bannerError,
			Message: "Ошибка сети: сервер недоступен",
		}
	case errors.Is(err, backend_client.ErrBadResponse):
		return http.StatusBadGateway, dto.Banner{
			Kind:    bannerError,
			Message: "Сервер вернул некорректный ответ",
		}
	case errors.As(err, &apiErr):
		// 4xx backend'а - ошибка запроса оператора, 5xx - наша проблема с backend
		code := http.StatusBadGateway
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			code = apiErr.Status
		}
		return code, dto.Banner{
			Kind:    bannerError,
			Message: apiErr.Message,
		}
	default:
		return http.StatusInternalServerError, dto.Banner{
			Kind:    bannerError,
			Message: "Что-то пошло не так",
		}
	}
}
