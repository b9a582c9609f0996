package models

import "time"

// статусы кандидата по вакансии
const (
	StatusScreeningOK     = "screening_ok"
	StatusScreeningFailed = "screening_failed"
	StatusInterviewOK     = "interview_ok"
	StatusInterviewFailed = "interview_failed"
	StatusArchived        = "archived"
)

type Candidate struct {
	ID         int        `json:"id"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	City       string     `json:"city"`
	TelegramID TelegramID `json:"telegram_id"`
	CreatedAt  Timestamp  `json:"created_at"`
}

// Meta - статус и оценки кандидата по конкретной вакансии
type Meta struct {
	CandidateID    int        `json:"candidate_id"`
	VacancyID      string     `json:"vacancy_id"`
	Status         string     `json:"status"`
	InterviewScore *float64   `json:"interview_score"`
	IsArchived     bool       `json:"is_archived"`
	UpdatedAt      *Timestamp `json:"updated_at"`
}

// Archived - кандидат отправлен в архив: флагом или статусом
func (m Meta) Archived() bool {
	return m.IsArchived || m.Status == StatusArchived
}

// ResumeScreening - результат скрининга резюме, nil у CandidateVacancyInfo
// значит, что скрининг ещё не проводился
type ResumeScreening struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// CandidateVacancyInfo - строка таблицы кандидатов
type CandidateVacancyInfo struct {
	Candidate       Candidate        `json:"candidate"`
	Vacancy         Vacancy          `json:"vacancy"`
	Meta            Meta             `json:"meta"`
	ResumeScreening *ResumeScreening `json:"resume_screening"`
}

// AppliedAt - когда кандидат откликнулся: время обновления статуса,
// а если его нет - время создания кандидата
func (i CandidateVacancyInfo) AppliedAt() time.Time {
	if i.Meta.UpdatedAt != nil && !i.Meta.UpdatedAt.IsZero() {
		return i.Meta.UpdatedAt.Time
	}
	return i.Candidate.CreatedAt.Time
}

// ScreeningScore - балл скрининга или -1, если скрининга не было
func (i CandidateVacancyInfo) ScreeningScore() float64 {
	if i.ResumeScreening == nil {
		return -1
	}
	return i.ResumeScreening.Score
}

// InterviewScore - балл интервью или -1
func (i CandidateVacancyInfo) InterviewScore() float64 {
	if i.Meta.InterviewScore == nil {
		return -1
	}
	return *i.Meta.InterviewScore
}

// Answer - ответ кандидата на вопрос, time_taken в секундах
type Answer struct {
	ID        int     `json:"id"`
	Content   string  `json:"content"`
	Score     float64 `json:"score"`
	TimeTaken int     `json:"time_taken"`
}

// OnTime - уложился ли кандидат в лимит вопроса
func (a Answer) OnTime(limit int) bool {
	return a.TimeTaken <= limit
}

// CandidateQuestionAnswer - вопрос и ответ на него, Answer == nil - ответа нет
type CandidateQuestionAnswer struct {
	Question Question `json:"question"`
	Answer   *Answer  `json:"answer"`
}
