package backend_client

import (
	"context"
	"net/http"
	"net/url"

	"hr_dashboard/internal/domain/models"
)

const (
	vacanciesEndpoint      = "/vacancies"
	vacancyEndpoint        = "/vacancy"
	archiveEndpoint        = "/vacancy/archive"
	candidateInfosEndpoint = "/candidate-vacancy-infos"
)

func vacancyPath(id string) string {
	return vacancyEndpoint + "/" + url.PathEscape(id)
}

// CreateVacancy - POST /vacancy. Backend может ответить пустым телом,
// тогда возвращается nil без ошибки
func (c *Client) CreateVacancy(ctx context.Context, req models.CreateVacancyRequest) (*models.Vacancy, error) {
	var created *models.Vacancy
	if err := c.Do(ctx, http.MethodPost, vacancyEndpoint, req, &created); err != nil {
		return nil, err
	}
	c.invalidate(ctx, vacanciesEndpoint)
	return created, nil
}

func (c *Client) GetVacancies(ctx context.Context) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := c.Do(ctx, http.MethodGet, vacanciesEndpoint, nil, &vacancies); err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (c *Client) GetVacancy(ctx context.Context, id string) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	if err := c.Do(ctx, http.MethodGet, vacancyPath(id), nil, &vacancy); err != nil {
		return nil, err
	}
	return &vacancy, nil
}

// DeleteVacancy удаляет вакансию, сбрасывает кэш списков, где она была
func (c *Client) DeleteVacancy(ctx context.Context, id string) error {
	if err := c.Do(ctx, http.MethodDelete, vacancyPath(id), nil, nil); err != nil {
		return err
	}
	c.invalidate(ctx, vacanciesEndpoint, vacancyPath(id), candidateInfosEndpoint)
	return nil
}
