package listing

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"hr_dashboard/internal/domain/models"
)

type SortField string

const (
	FieldFullName       SortField = "full_name"
	FieldVacancyTitle   SortField = "vacancy_title"
	FieldStatus         SortField = "status"
	FieldScreeningScore SortField = "screening_score"
	FieldInterviewScore SortField = "interview_score"
	FieldAppliedAt      SortField = "applied_at"
)

// SortFields - колонки таблицы, по которым можно сортировать
var SortFields = []SortField{
	FieldFullName,
	FieldVacancyTitle,
	FieldStatus,
	FieldScreeningScore,
	FieldInterviewScore,
	FieldAppliedAt,
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
	OrderNone SortOrder = "none" // порядок, в котором строки пришли от backend
)

// SortState - текущая сортировка таблицы
type SortState struct {
	Field SortField
	Order SortOrder
}

func DefaultSortState() SortState {
	return SortState{Field: FieldAppliedAt, Order: OrderDesc}
}

func validField(f SortField) bool {
	for _, known := range SortFields {
		if known == f {
			return true
		}
	}
	return false
}

// ParseSortState разбирает параметры запроса, мусор превращается в сортировку по умолчанию
func ParseSortState(field, order string) SortState {
	state := SortState{Field: SortField(field), Order: SortOrder(order)}
	if !validField(state.Field) {
		return DefaultSortState()
	}
	switch state.Order {
	case OrderAsc, OrderDesc, OrderNone:
		return state
	default:
		return DefaultSortState()
	}
}

// Next - состояние после клика по заголовку колонки clicked:
// другая колонка -> asc, та же asc -> desc, та же desc -> без сортировки
// с полем по умолчанию, из "без сортировки" любой клик -> asc
func (s SortState) Next(clicked SortField) SortState {
	if !validField(clicked) {
		return s
	}
	if s.Order == OrderNone || s.Field != clicked {
		return SortState{Field: clicked, Order: OrderAsc}
	}
	if s.Order == OrderAsc {
		return SortState{Field: clicked, Order: OrderDesc}
	}
	return SortState{Field: FieldAppliedAt, Order: OrderNone}
}

// Sort возвращает отсортированную копию, сортировка стабильная
func Sort(rows []models.CandidateVacancyInfo, state SortState) []models.CandidateVacancyInfo {
	out := make([]models.CandidateVacancyInfo, len(rows))
	copy(out, rows)

	if state.Order == OrderNone || !validField(state.Field) {
		return out
	}

	compare := comparator(state.Field)
	slices.SortStableFunc(out, func(a, b models.CandidateVacancyInfo) int {
		if state.Order == OrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

type compareFunc func(a, b models.CandidateVacancyInfo) int

func comparator(field SortField) compareFunc {
	switch field {
	case FieldFullName:
		// collate.Collator не потокобезопасен, заводим свой на каждую сортировку
		col := collate.New(language.Russian)
		return func(a, b models.CandidateVacancyInfo) int {
			return col.CompareString(a.Candidate.FullName, b.Candidate.FullName)
		}
	case FieldVacancyTitle:
		col := collate.New(language.Russian)
		return func(a, b models.CandidateVacancyInfo) int {
			return col.CompareString(a.Vacancy.Title, b.Vacancy.Title)
		}
	case FieldStatus:
		return func(a, b models.CandidateVacancyInfo) int {
			return cmp.Compare(models.StatusRank(a.Meta.Status), models.StatusRank(b.Meta.Status))
		}
	case FieldScreeningScore:
		return func(a, b models.CandidateVacancyInfo) int {
			return cmp.Compare(a.ScreeningScore(), b.ScreeningScore())
		}
	case FieldInterviewScore:
		return func(a, b models.CandidateVacancyInfo) int {
			return cmp.Compare(a.InterviewScore(), b.InterviewScore())
		}
	default:
		return func(a, b models.CandidateVacancyInfo) int {
			return a.AppliedAt().Compare(b.AppliedAt())
		}
	}
}
