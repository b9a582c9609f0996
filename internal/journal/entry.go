// журнал действий операторов: создание и удаление вакансий, архивация кандидатов
package journal

import (
	"context"
	"time"
)

type Action string

const (
	ActionCreateVacancy    Action = "create_vacancy"
	ActionDeleteVacancy    Action = "delete_vacancy"
	ActionArchiveCandidate Action = "archive_candidate"
)

// Entry - одна запись журнала. CandidateID == 0 - действие без кандидата
type Entry struct {
	Operator    string
	Action      Action
	VacancyID   string
	CandidateID int
	RequestID   string
	Success     bool
	Details     string // текст ошибки backend, если действие не удалось
	CreatedAt   time.Time
}

// Sink - куда журнал сбрасывает пачки записей
type Sink interface {
	Write(ctx context.Context, entries []Entry) error
}
