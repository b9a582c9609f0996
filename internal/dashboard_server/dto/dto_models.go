// описание моделей запросов и страниц дашборда
package dto

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"hr_dashboard/internal/vacancy_draft"
)

// параметры таблицы кандидатов из строки запроса
type CandidatesQuery struct {
	Query    string `form:"q" validate:"max=200"`
	Status   string `form:"status" validate:"max=64"`
	Archived bool   `form:"archived"`
	Sort     string `form:"sort" validate:"max=32"`
	Order    string `form:"order" validate:"max=8"`
}

// адрес карточки кандидата /candidates/:id/:vacancyId
type CandidateURI struct {
	ID        int    `uri:"id" validate:"required,min=1"`
	VacancyID string `uri:"vacancyId" validate:"required,max=64"`
}

// адрес вакансии /vacancies/:id/...
type VacancyURI struct {
	ID string `uri:"id" validate:"required,max=64"`
}

// ответ сервиса авторизации /auth/callback?token=...
type CallbackQuery struct {
	Token string `form:"token" validate:"required"`
}

// CreateVacancyForm - форма создания вакансии. Навыки и вопросы приходят
// параллельными массивами полей с одинаковыми именами
type CreateVacancyForm struct {
	ID                string   `form:"id" validate:"omitempty,uuid4"`
	Title             string   `form:"title" validate:"max=200"`
	SkillInput        string   `form:"skill_input" validate:"max=100"`
	Skills            []string `form:"skills" validate:"max=50"`
	QuestionContent   []string `form:"question_content" validate:"max=50"`
	QuestionReference []string `form:"question_reference" validate:"max=50"`
	QuestionTimeLimit []string `form:"question_time_limit" validate:"max=50"`
	Action            string   `form:"action" validate:"max=64"`
}

// ToDraft восстанавливает состояние формы. Кривое время на ответ становится 0,
// его поймает валидация черновика
func (f *CreateVacancyForm) ToDraft() *vacancy_draft.Draft {
	id := f.ID
	if id == "" {
		id = uuid.NewString()
	}

	skills := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	n := max(len(f.QuestionContent), len(f.QuestionReference), len(f.QuestionTimeLimit))
	questions := make([]vacancy_draft.QuestionDraft, 0, n)
	for i := 0; i < n; i++ {
		limit, err := strconv.Atoi(strings.TrimSpace(at(f.QuestionTimeLimit, i)))
		if err != nil {
			limit = 0
		}
		questions = append(questions, vacancy_draft.QuestionDraft{
			Content:   at(f.QuestionContent, i),
			Reference: at(f.QuestionReference, i),
			TimeLimit: limit,
		})
	}

	return &vacancy_draft.Draft{
		ID:         id,
		Title:      f.Title,
		SkillInput: f.SkillInput,
		Skills:     skills,
		Questions:  questions,
	}
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
