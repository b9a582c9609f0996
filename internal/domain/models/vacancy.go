// модели, которые дашборд получает от backend API и отправляет в него
package models

// вакансия с требованиями и вопросами для интервью
type Vacancy struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	KeyRequirements []string   `json:"key_requirements"`
	Questions       []Question `json:"questions"`
	CreatedAt       Timestamp  `json:"created_at"`
}

// вопрос интервью, time_limit - в секундах
type Question struct {
	ID        int    `json:"id"`
	VacancyID string `json:"vacancy_id"`
	Content   string `json:"content"`
	Reference string `json:"reference"`
	TimeLimit int    `json:"time_limit"`
	Position  int    `json:"position"`
}

// QuestionRequest - вопрос в запросе на создание вакансии
type QuestionRequest struct {
	Content   string `json:"content"`
	Reference string `json:"reference"`
	TimeLimit int    `json:"time_limit"`
}

// CreateVacancyRequest - тело POST /api/v1/vacancy.
// ID генерирует дашборд, он же уходит в ссылку на телеграм бота
type CreateVacancyRequest struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	KeyRequirements []string          `json:"key_requirements"`
	Questions       []QuestionRequest `json:"questions"`
}

// ArchiveRequest - тело POST /api/v1/vacancy/archive
type ArchiveRequest struct {
	CandidateID int    `json:"candidate_id"`
	VacancyID   string `json:"vacancy_id"`
}
