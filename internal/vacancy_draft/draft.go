// состояние формы создания вакансии и её валидация
package vacancy_draft

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"hr_dashboard/internal/domain/models"
)

// лимиты времени на ответ, в секундах
const (
	DefaultTimeLimit = 60
	MinTimeLimit     = 30
	MaxTimeLimit     = 300
)

const botLinkFormat = "https://t.me/%s?start=%s"

const (
	msgTitleRequired     = "Введите название вакансии"
	msgSkillsRequired    = "Добавьте хотя бы один навык"
	msgQuestionsRequired = "Добавьте хотя бы один вопрос"
	msgContentRequired   = "Введите текст вопроса"
	msgTimeLimitRequired = "Укажите время на ответ"
	msgTimeLimitRange    = "Время на ответ должно быть от 30 до 300 секунд"
)

type QuestionDraft struct {
	Content   string `json:"content" form:"content"`
	Reference string `json:"reference" form:"reference"`
	TimeLimit int    `json:"time_limit" form:"time_limit"`
}

func (q QuestionDraft) Validate() error {
	q.Content = strings.TrimSpace(q.Content)
	return validation.ValidateStruct(&q,
		validation.Field(&q.Content, validation.Required.Error(msgContentRequired)),
		validation.Field(&q.TimeLimit,
			validation.Required.Error(msgTimeLimitRequired),
			validation.Min(MinTimeLimit).Error(msgTimeLimitRange),
			validation.Max(MaxTimeLimit).Error(msgTimeLimitRange),
		),
	)
}

// Draft - то, что оператор успел ввести в форму.
// Между запросами живёт в скрытых полях формы
type Draft struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	SkillInput string          `json:"skill_input"`
	Skills     []string        `json:"skills"`
	Questions  []QuestionDraft `json:"questions"`
}

// New - пустая форма с одним вопросом
func New() *Draft {
	return &Draft{
		ID:        uuid.NewString(),
		Skills:    []string{},
		Questions: []QuestionDraft{{TimeLimit: DefaultTimeLimit}},
	}
}

// BotLink - ссылка для кандидатов на телеграм бота
func (d *Draft) BotLink(botName string) string {
	return BotLink(botName, d.ID)
}

// BotLink - ссылка на бота для уже созданной вакансии
func BotLink(botName, vacancyID string) string {
	return fmt.Sprintf(botLinkFormat, botName, vacancyID)
}

// AddSkill переносит SkillInput в список навыков.
// Пустые и уже добавленные навыки не добавляются, поле ввода тогда не очищается
func (d *Draft) AddSkill() bool {
	skill := strings.TrimSpace(d.SkillInput)
	if skill == "" {
		return false
	}
	for _, s := range d.Skills {
		if s == skill {
			return false
		}
	}
	d.Skills = append(d.Skills, skill)
	d.SkillInput = ""
	return true
}

func (d *Draft) RemoveSkill(i int) bool {
	if i < 0 || i >= len(d.Skills) {
		return false
	}
	d.Skills = append(d.Skills[:i:i], d.Skills[i+1:]...)
	return true
}

func (d *Draft) AddQuestion() {
	d.Questions = append(d.Questions, QuestionDraft{TimeLimit: DefaultTimeLimit})
}

// RemoveQuestion не удаляет последний оставшийся вопрос
func (d *Draft) RemoveQuestion(i int) bool {
	if len(d.Questions) <= 1 || i < 0 || i >= len(d.Questions) {
		return false
	}
	d.Questions = append(d.Questions[:i:i], d.Questions[i+1:]...)
	return true
}

// Validate проверяет форму целиком, ошибки - validation.Errors
// с ключами title, skills, questions (вложенные по индексу вопроса)
func (d *Draft) Validate() error {
	title := strings.TrimSpace(d.Title)
	return validation.Errors{
		"title":     validation.Validate(title, validation.Required.Error(msgTitleRequired)),
		"skills":    validation.Validate(d.Skills, validation.Required.Error(msgSkillsRequired)),
		"questions": validation.Validate(d.Questions, validation.Required.Error(msgQuestionsRequired)),
	}.Filter()
}

// Valid - можно ли нажимать "Создать вакансию"
func (d *Draft) Valid() bool {
	return d.Validate() == nil
}

// Errors раскладывает ошибки валидации в плоскую карту
// "title", "skills", "questions.0.content", ...
func (d *Draft) Errors() map[string]string {
	err := d.Validate()
	if err == nil {
		return nil
	}
	out := map[string]string{}
	flatten("", err, out)
	return out
}

// FirstError - ошибка для баннера: сначала название, потом навыки,
// потом вопросы по порядку
func (d *Draft) FirstError() string {
	errs := d.Errors()
	if len(errs) == 0 {
		return ""
	}
	for _, key := range []string{"title", "skills", "questions"} {
		if msg, ok := errs[key]; ok {
			return msg
		}
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return questionKeyLess(keys[i], keys[j]) })
	return errs[keys[0]]
}

// questions.2.content < questions.10.content
func questionKeyLess(a, b string) bool {
	ia, ib := questionIndex(a), questionIndex(b)
	if ia != ib {
		return ia < ib
	}
	return a < b
}

func questionIndex(key string) int {
	parts := strings.SplitN(key, ".", 3)
	if len(parts) < 2 {
		return -1
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return i
}

// ToRequest - тело запроса к backend с обрезанными пробелами
func (d *Draft) ToRequest() models.CreateVacancyRequest {
	questions := make([]models.QuestionRequest, 0, len(d.Questions))
	for _, q := range d.Questions {
		questions = append(questions, models.QuestionRequest{
			Content:   strings.TrimSpace(q.Content),
			Reference: strings.TrimSpace(q.Reference),
			TimeLimit: q.TimeLimit,
		})
	}
	skills := make([]string, len(d.Skills))
	copy(skills, d.Skills)

	return models.CreateVacancyRequest{
		ID:              d.ID,
		Title:           strings.TrimSpace(d.Title),
		KeyRequirements: skills,
		Questions:       questions,
	}
}

func flatten(prefix string, err error, out map[string]string) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		out[prefix] = err.Error()
		return
	}
	for key, e := range errs {
		if e == nil {
			continue
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		flatten(name, e, out)
	}
}
