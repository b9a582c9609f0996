// фильтрация и сортировка таблицы кандидатов
package listing

import (
	"strings"

	"hr_dashboard/internal/domain/models"
)

// StatusAll - значение фильтра статуса "любой"
const StatusAll = "all"

// Filter - состояние фильтров над таблицей кандидатов
type Filter struct {
	Query        string // подстрока в ФИО или названии вакансии
	Status       string // точное совпадение статуса, "" и "all" - любой
	ShowArchived bool   // показывать ли архивных
}

// Match проверяет одну строку таблицы
func (f Filter) Match(info models.CandidateVacancyInfo) bool {
	if !f.ShowArchived && info.Meta.Archived() {
		return false
	}

	if f.Status != "" && f.Status != StatusAll && info.Meta.Status != f.Status {
		return false
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(info.Candidate.FullName), query) ||
		strings.Contains(strings.ToLower(info.Vacancy.Title), query)
}

// Apply возвращает новые строки, прошедшие фильтр, порядок сохраняется
func (f Filter) Apply(rows []models.CandidateVacancyInfo) []models.CandidateVacancyInfo {
	out := make([]models.CandidateVacancyInfo, 0, len(rows))
	for _, row := range rows {
		if f.Match(row) {
			out = append(out, row)
		}
	}
	return out
}
