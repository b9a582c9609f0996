package session

import (
	"strings"

	"github.com/gin-gonic/gin"

	globalmodels "hr_dashboard/global_models"
)

const (
	flashCookie = "flash"
	flashMaxAge = 60
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash - одноразовое уведомление, показывается на следующей странице
type Flash struct {
	Kind    FlashKind
	Message string
}

func (m *Manager) SetFlash(c *gin.Context, kind FlashKind, message string) error {
	return m.cookies.SetCookie(c, globalmodels.CookieOptions{
		Name:   flashCookie,
		Value:  string(kind) + ":" + sanitize(message),
		MaxAge: flashMaxAge,
	})
}

// PopFlash читает уведомление и сразу стирает куку
func (m *Manager) PopFlash(c *gin.Context) *Flash {
	raw, err := m.cookies.GetCookie(c, flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	m.cookies.DeleteCookie(c, flashCookie, "")

	kind, message, ok := strings.Cut(raw, ":")
	if !ok || message == "" {
		return nil
	}
	switch FlashKind(kind) {
	case FlashSuccess, FlashError, FlashInfo:
		return &Flash{Kind: FlashKind(kind), Message: message}
	}
	return nil
}
