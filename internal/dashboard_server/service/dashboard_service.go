// описание слоя сервиса дашборда: загрузка страниц из backend, фильтры, формы, журнал
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"hr_dashboard/internal/domain/models"
	"hr_dashboard/internal/journal"
	"hr_dashboard/internal/listing"
	"hr_dashboard/internal/vacancy_draft"
)

// ErrInvalidDraft - форма вакансии не прошла валидацию, в backend не ходили
var ErrInvalidDraft = errors.New("vacancy draft is invalid")

// BackendAPI - то, что сервис использует из клиента backend
type BackendAPI interface {
	CreateVacancy(ctx context.Context, req models.CreateVacancyRequest) (*models.Vacancy, error)
	GetVacancies(ctx context.Context) ([]models.Vacancy, error)
	DeleteVacancy(ctx context.Context, id string) error
	GetCandidateVacancyInfos(ctx context.Context) ([]models.CandidateVacancyInfo, error)
	GetCandidateVacancyInfo(ctx context.Context, candidateID int, vacancyID string) (*models.CandidateVacancyInfo, error)
	ArchiveCandidate(ctx context.Context, req models.ArchiveRequest) error
	GetCandidateAnswers(ctx context.Context, candidateID int, vacancyID string) ([]models.CandidateQuestionAnswer, error)
}

// Recorder - журнал действий операторов
type Recorder interface {
	Record(entry journal.Entry)
}

// Actor - кто выполняет действие, для журнала
type Actor struct {
	Operator  string
	RequestID string
}

// описание интерфейса слоя сервиса
type DashboardServiceInterface interface {
	ListCandidates(ctx context.Context, filter listing.Filter, sort listing.SortState) (*CandidatesPage, error)
	CandidateDetails(ctx context.Context, candidateID int, vacancyID string) (*CandidateDetails, error)
	ArchiveCandidate(ctx context.Context, actor Actor, candidateID int, vacancyID string) error
	ListVacancies(ctx context.Context) ([]models.Vacancy, error)
	CreateVacancy(ctx context.Context, actor Actor, draft *vacancy_draft.Draft) (*models.Vacancy, error)
	DeleteVacancy(ctx context.Context, actor Actor, id string) error
	BotLink(vacancyID string) string
}

// CandidatesPage - таблица кандидатов после фильтров и сортировки
type CandidatesPage struct {
	Rows  []models.CandidateVacancyInfo
	Total int // сколько пришло из backend до фильтров
}

// CandidateDetails - карточка кандидата по вакансии
type CandidateDetails struct {
	Info    models.CandidateVacancyInfo
	Answers []models.CandidateQuestionAnswer
}

type DashboardService struct {
	backend BackendAPI
	journal Recorder
	botName string
}

// конструктор для слоя сервиса
func NewDashboardService(backend BackendAPI, recorder Recorder, botName string) (*DashboardService, error) {
	if backend == nil {
		return nil, errors.New("backend client is required")
	}
	if recorder == nil {
		return nil, errors.New("journal is required")
	}
	return &DashboardService{backend: backend, journal: recorder, botName: botName}, nil
}

func (s *DashboardService) ListCandidates(ctx context.Context, filter listing.Filter, sort listing.SortState) (*CandidatesPage, error) {
	infos, err := s.backend.GetCandidateVacancyInfos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	rows := listing.Sort(filter.Apply(infos), sort)
	return &CandidatesPage{Rows: rows, Total: len(infos)}, nil
}

// CandidateDetails грузит карточку и ответы параллельно
func (s *DashboardService) CandidateDetails(ctx context.Context, candidateID int, vacancyID string) (*CandidateDetails, error) {
	var (
		info    *models.CandidateVacancyInfo
		answers []models.CandidateQuestionAnswer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.backend.GetCandidateVacancyInfo(gctx, candidateID, vacancyID)
		if err != nil {
			return fmt.Errorf("failed to load candidate: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		answers, err = s.backend.GetCandidateAnswers(gctx, candidateID, vacancyID)
		if err != nil {
			return fmt.Errorf("failed to load answers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &CandidateDetails{Info: *info, Answers: answers}, nil
}

func (s *DashboardService) ArchiveCandidate(ctx context.Context, actor Actor, candidateID int, vacancyID string) error {
	err := s.backend.ArchiveCandidate(ctx, models.ArchiveRequest{CandidateID: candidateID, VacancyID: vacancyID})
	s.record(actor, journal.ActionArchiveCandidate, vacancyID, candidateID, err)
	if err != nil {
		return fmt.Errorf("failed to archive candidate: %w", err)
	}
	return nil
}

func (s *DashboardService) ListVacancies(ctx context.Context) ([]models.Vacancy, error) {
	vacancies, err := s.backend.GetVacancies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vacancies: %w", err)
	}
	return vacancies, nil
}

// CreateVacancy проверяет форму и отправляет её в backend
func (s *DashboardService) CreateVacancy(ctx context.Context, actor Actor, draft *vacancy_draft.Draft) (*models.Vacancy, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	req := draft.ToRequest()
	created, err := s.backend.CreateVacancy(ctx, req)
	s.record(actor, journal.ActionCreateVacancy, req.ID, 0, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create vacancy: %w", err)
	}
	return created, nil
}

func (s *DashboardService) DeleteVacancy(ctx context.Context, actor Actor, id string) error {
	err := s.backend.DeleteVacancy(ctx, id)
	s.record(actor, journal.ActionDeleteVacancy, id, 0, err)
	if err != nil {
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}
	return nil
}

// BotLink - ссылка на телеграм бота для кандидатов вакансии
func (s *DashboardService) BotLink(vacancyID string) string {
	return vacancy_draft.BotLink(s.botName, vacancyID)
}

func (s *DashboardService) record(actor Actor, action journal.Action, vacancyID string, candidateID int, err error) {
	entry := journal.Entry{
		Operator:    actor.Operator,
		Action:      action,
		VacancyID:   vacancyID,
		CandidateID: candidateID,
		RequestID:   actor.RequestID,
		Success:     err == nil,
	}
	if err != nil {
		entry.Details = err.Error()
	}
	s.journal.Record(entry)
}
