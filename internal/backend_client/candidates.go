package backend_client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hr_dashboard/internal/domain/models"
)

func candidateInfoPath(candidateID int, vacancyID string) string {
	return "/candidate-vacancy-info/" + strconv.Itoa(candidateID) + "/" + url.PathEscape(vacancyID)
}

func candidateAnswersPath(candidateID int, vacancyID string) string {
	return "/candidate/answers/" + strconv.Itoa(candidateID) + "/" + url.PathEscape(vacancyID)
}

// GetCandidateVacancyInfos - все пары кандидат-вакансия, фильтрация на стороне дашборда
func (c *Client) GetCandidateVacancyInfos(ctx context.Context) ([]models.CandidateVacancyInfo, error) {
	var infos []models.CandidateVacancyInfo
	if err := c.Do(ctx, http.MethodGet, candidateInfosEndpoint, nil, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

func (c *Client) GetCandidateVacancyInfo(ctx context.Context, candidateID int, vacancyID string) (*models.CandidateVacancyInfo, error) {
	var info models.CandidateVacancyInfo
	if err := c.Do(ctx, http.MethodGet, candidateInfoPath(candidateID, vacancyID), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ArchiveCandidate отправляет кандидата по вакансии в архив
func (c *Client) ArchiveCandidate(ctx context.Context, req models.ArchiveRequest) error {
	if err := c.Do(ctx, http.MethodPost, archiveEndpoint, req, nil); err != nil {
		return err
	}
	c.invalidate(ctx, candidateInfosEndpoint, candidateInfoPath(req.CandidateID, req.VacancyID))
	return nil
}

func (c *Client) GetCandidateAnswers(ctx context.Context, candidateID int, vacancyID string) ([]models.CandidateQuestionAnswer, error) {
	var answers []models.CandidateQuestionAnswer
	if err := c.Do(ctx, http.MethodGet, candidateAnswersPath(candidateID, vacancyID), nil, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// Ping проверяет, что backend отвечает. Идёт мимо breaker, лимитера и кэша,
// иначе открытый breaker не даст увидеть восстановление backend.
// Любой ответ ниже 500 считается живым backend
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	_, err := c.send(ctx, http.MethodGet, vacanciesEndpoint, nil, c.serviceToken)
	elapsed := time.Since(start)

	if err != nil && isBackendFailure(err) {
		return elapsed, err
	}
	return elapsed, nil
}
