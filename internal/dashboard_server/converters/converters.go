package converters

import (
	"net/url"
	"strconv"

	"hr_dashboard/internal/dashboard_server/dto"
	"hr_dashboard/internal/dashboard_server/service"
	"hr_dashboard/internal/domain/models"
	"hr_dashboard/internal/listing"
	"hr_dashboard/internal/vacancy_draft"
)

// подписи колонок таблицы кандидатов в порядке показа
var sortHeaderLabels = []struct {
	field listing.SortField
	label string
}{
	{listing.FieldFullName, "ФИО"},
	{listing.FieldVacancyTitle, "Вакансия"},
	{listing.FieldStatus, "Статус"},
	{listing.FieldScreeningScore, "Скрининг"},
	{listing.FieldInterviewScore, "Интервью"},
	{listing.FieldAppliedAt, "Дата подачи"},
}

// конвертация параметров запроса в фильтр и сортировку
func CandidatesQueryToDomain(q dto.CandidatesQuery) (listing.Filter, listing.SortState) {
	filter := listing.Filter{
		Query:        q.Query,
		Status:       q.Status,
		ShowArchived: q.Archived,
	}
	return filter, listing.ParseSortState(q.Sort, q.Order)
}

// конвертация таблицы кандидатов для шаблона
func CandidatesPageToDTO(q dto.CandidatesQuery, sort listing.SortState, page *service.CandidatesPage) dto.CandidatesPage {
	status := q.Status
	if status == "" {
		status = listing.StatusAll
	}

	result := dto.CandidatesPage{
		Query:        q.Query,
		Status:       status,
		ShowArchived: q.Archived,
		Sort:         string(sort.Field),
		Order:        string(sort.Order),
		Statuses:     statusOptions(status),
		Headers:      sortHeaders(q, sort),
		Rows:         []dto.CandidateRow{},
	}
	if page == nil {
		return result
	}

	for _, info := range page.Rows {
		result.Rows = append(result.Rows, CandidateRowToDTO(info))
	}
	result.Shown = len(result.Rows)
	result.Loaded = page.Total
	return result
}

func CandidateRowToDTO(info models.CandidateVacancyInfo) dto.CandidateRow {
	return dto.CandidateRow{
		FullName:     info.Candidate.FullName,
		VacancyTitle: info.Vacancy.Title,
		City:         info.Candidate.City,
		StatusLabel:  models.StatusLabel(info.Meta.Status),
		StatusColor:  models.StatusColor(info.Meta.Status),
		Screening:    screeningScore(info.ResumeScreening),
		Interview:    scoreToDTO(info.Meta.InterviewScore),
		AppliedAt:    formatDate(info.AppliedAt()),
		Archived:     info.Meta.Archived(),
		DetailsURL:   candidatePath(info),
		ArchiveURL:   candidatePath(info) + "/archive",
	}
}

// конвертация карточки кандидата
func CandidateDetailsToDTO(details *service.CandidateDetails) dto.CandidateDetailsPage {
	if details == nil {
		return dto.CandidateDetailsPage{}
	}
	info := details.Info

	page := dto.CandidateDetailsPage{
		Found:        true,
		FullName:     info.Candidate.FullName,
		Archived:     info.Meta.Archived(),
		AppliedAt:    formatDate(info.AppliedAt()),
		VacancyTitle: info.Vacancy.Title,
		City:         orDash(info.Candidate.City),
		Phone:        orDash(info.Candidate.Phone),
		Telegram:     orDash(string(info.Candidate.TelegramID)),
		StatusLabel:  models.StatusLabel(info.Meta.Status),
		StatusColor:  models.StatusColor(info.Meta.Status),
		Screening:    screeningScore(info.ResumeScreening),
		Interview:    scoreToDTO(info.Meta.InterviewScore),
		Answers:      make([]dto.AnswerView, 0, len(details.Answers)),
		ArchiveURL:   candidatePath(info) + "/archive",
	}
	if info.ResumeScreening != nil {
		page.ScreeningFeedback = info.ResumeScreening.Feedback
	}

	for i, qa := range details.Answers {
		view := dto.AnswerView{
			Number:    i + 1,
			Question:  qa.Question.Content,
			Reference: qa.Question.Reference,
			TimeLimit: qa.Question.TimeLimit,
		}
		if qa.Answer != nil {
			score := qa.Answer.Score
			view.Answered = true
			view.Content = qa.Answer.Content
			view.OnTime = qa.Answer.OnTime(qa.Question.TimeLimit)
			view.TimeTaken = qa.Answer.TimeTaken
			view.Score = scoreToDTO(&score)
		}
		page.Answers = append(page.Answers, view)
	}
	return page
}

// конвертация списка вакансий в карточки, botLink строит ссылку на бота по id вакансии
func VacanciesToDTO(vacancies []models.Vacancy, botLink func(vacancyID string) string) dto.VacanciesPage {
	page := dto.VacanciesPage{Vacancies: make([]dto.VacancyCard, 0, len(vacancies))}
	for _, v := range vacancies {
		page.Vacancies = append(page.Vacancies, dto.VacancyCard{
			ID:            v.ID,
			Title:         v.Title,
			CreatedAt:     formatDate(v.CreatedAt.Time),
			Skills:        v.KeyRequirements,
			QuestionCount: len(v.Questions),
			QuestionsText: questionsText(len(v.Questions)),
			BotLink:       botLink(v.ID),
			DeleteURL:     "/vacancies/" + url.PathEscape(v.ID) + "/delete",
		})
	}
	return page
}

// конвертация черновика вакансии в форму. showErrors - подсвечивать ли ошибки
// (после попытки отправки), botLink - ссылка для кандидатов
func DraftToDTO(d *vacancy_draft.Draft, botLink string, showErrors bool) dto.CreateVacancyPage {
	page := dto.CreateVacancyPage{
		ID:         d.ID,
		Title:      d.Title,
		SkillInput: d.SkillInput,
		Skills:     d.Skills,
		Questions:  make([]dto.QuestionField, 0, len(d.Questions)),
		BotLink:    botLink,
		MinTime:    vacancy_draft.MinTimeLimit,
		MaxTime:    vacancy_draft.MaxTimeLimit,
		Valid:      d.Valid(),
	}

	var errs map[string]string
	if showErrors {
		errs = d.Errors()
		page.TitleError = errs["title"]
		page.SkillsError = errs["skills"]
	}

	for i, q := range d.Questions {
		prefix := "questions." + strconv.Itoa(i) + "."
		page.Questions = append(page.Questions, dto.QuestionField{
			Number:       i + 1,
			Content:      q.Content,
			Reference:    q.Reference,
			TimeLimit:    q.TimeLimit,
			ContentError: errs[prefix+"content"],
			TimeError:    errs[prefix+"time_limit"],
			RemoveAction: vacancy_draft.Action{Kind: vacancy_draft.ActionRemoveQuestion, Index: i}.String(),
			CanRemove:    len(d.Questions) > 1,
		})
	}
	return page
}

func candidatePath(info models.CandidateVacancyInfo) string {
	vacancyID := info.Meta.VacancyID
	if vacancyID == "" {
		vacancyID = info.Vacancy.ID
	}
	return "/candidates/" + strconv.Itoa(info.Candidate.ID) + "/" + url.PathEscape(vacancyID)
}

func statusOptions(selected string) []dto.StatusOption {
	options := []dto.StatusOption{{Value: listing.StatusAll, Label: "Все статусы", Selected: selected == listing.StatusAll}}
	for _, status := range models.KnownStatuses {
		options = append(options, dto.StatusOption{
			Value:    status,
			Label:    models.StatusLabel(status),
			Selected: selected == status,
		})
	}
	return options
}

// sortHeaders строит ссылки заголовков: фильтры сохраняются, сортировка
// становится следующей по циклу
func sortHeaders(q dto.CandidatesQuery, current listing.SortState) []dto.SortHeader {
	headers := make([]dto.SortHeader, 0, len(sortHeaderLabels))
	for _, h := range sortHeaderLabels {
		next := current.Next(h.field)

		values := url.Values{}
		if q.Query != "" {
			values.Set("q", q.Query)
		}
		if q.Status != "" && q.Status != listing.StatusAll {
			values.Set("status", q.Status)
		}
		if q.Archived {
			values.Set("archived", "true")
		}
		values.Set("sort", string(next.Field))
		values.Set("order", string(next.Order))

		header := dto.SortHeader{Label: h.label, URL: "/candidates?" + values.Encode()}
		if current.Field == h.field {
			switch current.Order {
			case listing.OrderAsc:
				header.Indicator = "▲"
			case listing.OrderDesc:
				header.Indicator = "▼"
			}
		}
		headers = append(headers, header)
	}
	return headers
}
