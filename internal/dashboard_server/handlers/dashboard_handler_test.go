package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr_dashboard/configs"
	"hr_dashboard/internal/backend_client"
	"hr_dashboard/internal/dashboard_server/dto"
	"hr_dashboard/internal/dashboard_server/service"
	"hr_dashboard/internal/dashboard_server/session"
	"hr_dashboard/internal/domain/models"
	"hr_dashboard/internal/health"
	"hr_dashboard/internal/listing"
	"hr_dashboard/internal/vacancy_draft"
	"hr_dashboard/shared/circuitbreaker"
	"hr_dashboard/shared/config"
	"hr_dashboard/shared/cookie"
	"hr_dashboard/shared/middleware"
	"hr_dashboard/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	page      *service.CandidatesPage
	details   *service.CandidateDetails
	vacancies []models.Vacancy
	err       error

	gotFilter listing.Filter
	gotSort   listing.SortState
	gotToken  string
	actors    []service.Actor
	archived  []string
	created   []*vacancy_draft.Draft
	deleted   []string
}

func (f *fakeService) ListCandidates(ctx context.Context, filter listing.Filter, sort listing.SortState) (*service.CandidatesPage, error) {
	f.gotFilter, f.gotSort = filter, sort
	f.gotToken = backend_client.TokenFromContext(ctx)
	return f.page, f.err
}

func (f *fakeService) CandidateDetails(_ context.Context, candidateID int, vacancyID string) (*service.CandidateDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakeService) ArchiveCandidate(_ context.Context, actor service.Actor, candidateID int, vacancyID string) error {
	f.actors = append(f.actors, actor)
	if f.err != nil {
		return f.err
	}
	f.archived = append(f.archived, fmt.Sprintf("%d/%s", candidateID, vacancyID))
	return nil
}

func (f *fakeService) ListVacancies(context.Context) ([]models.Vacancy, error) {
	return f.vacancies, f.err
}

func (f *fakeService) CreateVacancy(_ context.Context, actor service.Actor, d *vacancy_draft.Draft) (*models.Vacancy, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrInvalidDraft, err)
	}
	if f.err != nil {
		return nil, f.err
	}
	f.actors = append(f.actors, actor)
	f.created = append(f.created, d)
	return &models.Vacancy{ID: d.ID}, nil
}

func (f *fakeService) DeleteVacancy(_ context.Context, actor service.Actor, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeService) BotLink(vacancyID string) string {
	return vacancy_draft.BotLink("test_bot", vacancyID)
}

type fakeMonitor struct{ status health.Status }

func (m fakeMonitor) Status() health.Status { return m.status }
func (m fakeMonitor) BackendDown() bool     { return m.status.Checked && !m.status.Up }

type fakeBreaker struct{}

func (fakeBreaker) BreakerState() circuitbreaker.State { return circuitbreaker.StateClosed }

type fakeJournal struct{}

func (fakeJournal) Pending() int { return 3 }

type testEnv struct {
	router  *gin.Engine
	svc     *fakeService
	handler *DashboardHandler
}

func newEnv(t *testing.T, auth configs.AuthConfig, monitor BackendMonitor) *testEnv {
	t.Helper()
	svc := &fakeService{}
	sessions := session.NewManager(cookie.NewManager(*config.DefaultCookieConfig()), time.Hour)

	h, err := NewDashboardHandler(Dependencies{
		Service:  svc,
		Sessions: sessions,
		Monitor:  monitor,
		Breaker:  fakeBreaker{},
		Journal:  fakeJournal{},
		Auth:     auth,
	})
	require.NoError(t, err)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(middleware.SetUpRequest())
	r.GET("/health", h.HealthHandler)
	r.GET("/login", h.LoginPageHandler)
	r.POST("/login", h.LoginHandler)
	r.GET("/auth/callback",
		middleware.ValidateMiddleware(&dto.CallbackQuery{}, binding.Query, h.RedirectOnInvalid("/login", "Не удалось войти")),
		h.CallbackHandler)
	r.GET("/logout", h.LogoutHandler)

	g := r.Group("/", h.AuthGuard())
	g.GET("/candidates",
		middleware.ValidateMiddleware(&dto.CandidatesQuery{}, binding.Query, h.RedirectOnInvalid("/candidates", "")),
		h.CandidatesHandler)
	g.GET("/candidates/:id/:vacancyId",
		middleware.ValidateMiddleware(&dto.CandidateURI{}, nil, h.CandidateNotFound),
		h.CandidateDetailsHandler)
	g.POST("/candidates/:id/:vacancyId/archive",
		middleware.ValidateMiddleware(&dto.CandidateURI{}, nil, h.RedirectOnInvalid("/candidates", "Кандидат не найден")),
		h.ArchiveCandidateHandler)
	g.GET("/vacancies", h.VacanciesHandler)
	g.GET("/vacancies/create", h.CreateVacancyPageHandler)
	g.POST("/vacancies/create",
		middleware.ValidateMiddleware(&dto.CreateVacancyForm{}, binding.Form, h.RedirectOnInvalid("/vacancies/create", "Некорректные данные формы")),
		h.CreateVacancyHandler)
	g.POST("/vacancies/:id/delete",
		middleware.ValidateMiddleware(&dto.VacancyURI{}, nil, h.RedirectOnInvalid("/vacancies", "")),
		h.DeleteVacancyHandler)

	return &testEnv{router: r, svc: svc, handler: h}
}

// devSession - куки dev входа, без токена
func devSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "is_authenticated", Value: "true"})
	req.AddCookie(&http.Cookie{Name: "operator", Value: "dev"})
	return req
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashOf(w *httptest.ResponseRecorder) string {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" && ck.MaxAge >= 0 {
			v, _ := url.QueryUnescape(ck.Value)
			return v
		}
	}
	return ""
}

func TestNewDashboardHandler(t *testing.T) {
	_, err := NewDashboardHandler(Dependencies{})
	assert.Error(t, err)
}

func TestHealthHandler(t *testing.T) {
	checked := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	env := newEnv(t, configs.AuthConfig{}, fakeMonitor{status: health.Status{
		Checked: true, Up: false, LastCheck: checked, Latency: 20 * time.Millisecond, Error: "connection refused",
	}})

	w := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "down", resp.Backend)
	assert.Equal(t, int64(20), resp.LatencyMs)
	assert.Equal(t, "connection refused", resp.Error)
	assert.Equal(t, checked.Format(time.RFC3339), resp.LastCheck)
	assert.Equal(t, circuitbreaker.StateClosed.String(), resp.BreakerState)
	assert.Equal(t, 3, resp.JournalQueue)
}

func TestAuthPages(t *testing.T) {
	t.Run("страница входа", func(t *testing.T) {
		env := newEnv(t, configs.AuthConfig{}, nil)
		w := env.do(httptest.NewRequest(http.MethodGet, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Добро пожаловать!")

		w = env.do(devSession(httptest.NewRequest(http.MethodGet, "/login", nil)))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/candidates", w.Header().Get("Location"))
	})

	t.Run("dev вход", func(t *testing.T) {
		env := newEnv(t, configs.AuthConfig{}, nil)
		w := env.do(httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/candidates", w.Header().Get("Location"))
		assert.Contains(t, strings.Join(w.Header().Values("Set-Cookie"), ";"), "is_authenticated=true")
	})

	t.Run("внешний сервис авторизации", func(t *testing.T) {
		env := newEnv(t, configs.AuthConfig{
			LoginURL:  "https://auth.example.com/login?app=hr",
			PublicURL: "https://hr.example.com/",
		}, nil)
		w := env.do(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusSeeOther, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "auth.example.com", loc.Host)
		assert.Equal(t, "hr", loc.Query().Get("app"))
		assert.Equal(t, "https://hr.example.com/auth/callback", loc.Query().Get("redirect_uri"))
	})

	t.Run("callback без токена", func(t *testing.T) {
		env := newEnv(t, configs.AuthConfig{}, nil)
		w := env.do(httptest.NewRequest(http.MethodGet, "/auth/callback", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Equal(t, "error:Не удалось войти", flashOf(w))
	})

	t.Run("callback с битым токеном", func(t *testing.T) {
		env := newEnv(t, configs.AuthConfig{}, nil)
		w := env.do(httptest.NewRequest(http.MethodGet, "/auth/callback?token=garbage", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Contains(t, flashOf(w), "токен недействителен")
	})

	t.Run("выход", func(t *testing.T) {
		env := newEnv(t, configs.AuthConfig{LogoutURL: "https://auth.example.com/logout"}, nil)
		w := env.do(devSession(httptest.NewRequest(http.MethodGet, "/logout", nil)))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://auth.example.com/logout", w.Header().Get("Location"))
	})
}

func TestCandidatesHandler(t *testing.T) {
	env := newEnv(t, configs.AuthConfig{}, fakeMonitor{status: health.Status{Checked: true}})
	env.svc.page = &service.CandidatesPage{
		Rows: []models.CandidateVacancyInfo{{
			Candidate: models.Candidate{ID: 1, FullName: "Иванов Иван"},
			Vacancy:   models.Vacancy{ID: "v1", Title: "Go разработчик"},
			Meta:      models.Meta{VacancyID: "v1", Status: models.StatusInterviewOK},
		}},
		Total: 5,
	}

	t.Run("без сессии", func(t *testing.T) {
		w := env.do(httptest.NewRequest(http.MethodGet, "/candidates", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("таблица", func(t *testing.T) {
		w := env.do(devSession(httptest.NewRequest(http.MethodGet,
			"/candidates?q=%D0%B8%D0%B2&status=interview_ok&archived=true&sort=full_name&order=desc", nil)))
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, "Иванов Иван")
		assert.Contains(t, body, "Интервью пройдено")
		assert.Contains(t, body, "Всего кандидатов: 1")
		assert.Contains(t, body, "Сервер недоступен", "проверка backend не удалась")

		assert.Equal(t, listing.Filter{Query: "ив", Status: models.StatusInterviewOK, ShowArchived: true}, env.svc.gotFilter)
		assert.Equal(t, listing.SortState{Field: listing.FieldFullName, Order: listing.OrderDesc}, env.svc.gotSort)
		assert.Empty(t, env.svc.gotToken, "в dev режиме токена нет")
	})

	t.Run("кривой запрос", func(t *testing.T) {
		w := env.do(devSession(httptest.NewRequest(http.MethodGet, "/candidates?archived=maybe", nil)))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/candidates", w.Header().Get("Location"))
	})

	t.Run("ошибка сети", func(t *testing.T) {
		env.svc.err = fmt.Errorf("%w: dial tcp: connection refused", backend_client.ErrNetwork)
		defer func() { env.svc.err = nil }()

		w := env.do(devSession(httptest.NewRequest(http.MethodGet, "/candidates", nil)))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Ошибка сети")
		assert.Contains(t, w.Body.String(), "Кандидаты не найдены")
	})

	t.Run("backend не принял токен", func(t *testing.T) {
		env.svc.err = &backend_client.APIError{Status: http.StatusUnauthorized, Message: "token expired"}
		defer func() { env.svc.err = nil }()

		w := env.do(devSession(httptest.NewRequest(http.MethodGet, "/candidates", nil)))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Equal(t, "error:Сессия истекла, войдите снова", flashOf(w))
	})
}

func TestCandidateDetailsHandler(t *testing.T) {
	env := newEnv(t, configs.AuthConfig{}, nil)
	env.svc.details = &service.CandidateDetails{
		Info: models.CandidateVacancyInfo{
			Candidate: models.Candidate{ID: 4, FullName: "Петрова Анна", City: "Самара"},
			Vacancy:   models.Vacancy{ID: "v1", Title: "Аналитик"},
		},
	}

	w := env.do(devSession(httptest.NewRequest(http.MethodGet, "/candidates/4/v1", nil)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Петрова Анна")
	assert.Contains(t, w.Body.String(), "Самара")

	w = env.do(devSession(httptest.NewRequest(http.MethodGet, "/candidates/abc/v1", nil)))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Кандидат не найден")

	env.svc.err = &backend_client.APIError{Status: http.StatusNotFound, Message: "nope"}
	w = env.do(devSession(httptest.NewRequest(http.MethodGet, "/candidates/4/v1", nil)))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Кандидат не найден")
}

func TestArchiveCandidateHandler(t *testing.T) {
	env := newEnv(t, configs.AuthConfig{}, nil)

	req := devSession(httptest.NewRequest(http.MethodPost, "/candidates/4/v1/archive", nil))
	req.Header.Set("Referer", "http://example.com/candidates?q=%D0%B8%D0%B2")
	w := env.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/candidates?q=%D0%B8%D0%B2", w.Header().Get("Location"))
	assert.Equal(t, []string{"4/v1"}, env.svc.archived)
	require.Len(t, env.svc.actors, 1)
	assert.Equal(t, session.DevOperator, env.svc.actors[0].Operator)
	assert.NotEmpty(t, env.svc.actors[0].RequestID)
	assert.Equal(t, "success:Кандидат перемещён в архив", flashOf(w))

	t.Run("чужой referer", func(t *testing.T) {
		req := devSession(httptest.NewRequest(http.MethodPost, "/candidates/4/v1/archive", nil))
		req.Header.Set("Referer", "https://evil.example.org/candidates")
		w := env.do(req)
		assert.Equal(t, "/candidates", w.Header().Get("Location"))
	})

	t.Run("ошибка", func(t *testing.T) {
		env.svc.err = circuitbreaker.ErrCircuitOpen
		defer func() { env.svc.err = nil }()
		w := env.do(devSession(httptest.NewRequest(http.MethodPost, "/candidates/4/v1/archive", nil)))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Contains(t, flashOf(w), "Сервер временно недоступен")
	})
}

func TestVacanciesHandler(t *testing.T) {
	env := newEnv(t, configs.AuthConfig{}, nil)
	env.svc.vacancies = []models.Vacancy{{ID: "v1", Title: "Go разработчик", KeyRequirements: []string{"Go"}}}

	w := env.do(devSession(httptest.NewRequest(http.MethodGet, "/vacancies", nil)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Go разработчик")
	assert.Contains(t, w.Body.String(), "https://t.me/test_bot?start=v1")

	w = env.do(devSession(httptest.NewRequest(http.MethodPost, "/vacancies/v1/delete", nil)))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/vacancies", w.Header().Get("Location"))
	assert.Equal(t, []string{"v1"}, env.svc.deleted)
	assert.Equal(t, "success:Вакансия удалена", flashOf(w))
}

func TestCreateVacancyHandler(t *testing.T) {
	env := newEnv(t, configs.AuthConfig{}, nil)
	const id = "0b6f3c57-2a55-4a8e-9f3e-5f2f8a0d3c11"

	t.Run("пустая форма", func(t *testing.T) {
		w := env.do(devSession(httptest.NewRequest(http.MethodGet, "/vacancies/create", nil)))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Создание новой вакансии")
		assert.Contains(t, w.Body.String(), "https://t.me/test_bot?start=")
	})

	t.Run("добавить навык", func(t *testing.T) {
		w := env.do(devSession(postForm("/vacancies/create", url.Values{
			"id":                  {id},
			"title":               {"Go разработчик"},
			"skill_input":         {"PostgreSQL"},
			"skills":              {"Go"},
			"question_content":    {""},
			"question_reference":  {""},
			"question_time_limit": {"60"},
			"action":              {"add_skill"},
		})))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `value="PostgreSQL"`)
		assert.Contains(t, body, `value="remove_skill:1"`)
		assert.Contains(t, body, id)
		assert.NotContains(t, body, "Введите текст вопроса", "ошибки показываем только после отправки")
	})

	t.Run("отправка невалидной формы", func(t *testing.T) {
		w := env.do(devSession(postForm("/vacancies/create", url.Values{
			"id":                  {id},
			"question_content":    {"Вопрос"},
			"question_time_limit": {"600"},
			"action":              {"submit"},
		})))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Введите название вакансии")
		assert.Contains(t, w.Body.String(), "Время на ответ должно быть от 30 до 300 секунд")
		assert.Empty(t, env.svc.created)
	})

	t.Run("неизвестное действие", func(t *testing.T) {
		w := env.do(devSession(postForm("/vacancies/create", url.Values{"action": {"explode"}})))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("кривой id", func(t *testing.T) {
		w := env.do(devSession(postForm("/vacancies/create", url.Values{"id": {"not-a-uuid"}})))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/vacancies/create", w.Header().Get("Location"))
	})

	t.Run("успех", func(t *testing.T) {
		w := env.do(devSession(postForm("/vacancies/create", url.Values{
			"id":                  {id},
			"title":               {" Go разработчик "},
			"skills":              {"Go", "SQL"},
			"question_content":    {"Что такое горутина?", "Что такое канал?"},
			"question_reference":  {"", "Примитив синхронизации"},
			"question_time_limit": {"60", "120"},
		})))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/vacancies", w.Header().Get("Location"))
		assert.Equal(t, "success:Вакансия успешно создана!", flashOf(w))

		require.Len(t, env.svc.created, 1)
		req := env.svc.created[0].ToRequest()
		assert.Equal(t, id, req.ID)
		assert.Equal(t, "Go разработчик", req.Title)
		assert.Equal(t, []string{"Go", "SQL"}, req.KeyRequirements)
		require.Len(t, req.Questions, 2)
		assert.Equal(t, models.QuestionRequest{Content: "Что такое канал?", Reference: "Примитив синхронизации", TimeLimit: 120}, req.Questions[1])
	})

	t.Run("ошибка backend сохраняет форму", func(t *testing.T) {
		env.svc.err = &backend_client.APIError{Status: http.StatusConflict, Message: "Вакансия уже существует"}
		defer func() { env.svc.err = nil }()

		w := env.do(devSession(postForm("/vacancies/create", url.Values{
			"id":                  {id},
			"title":               {"Go разработчик"},
			"skills":              {"Go"},
			"question_content":    {"Что такое горутина?"},
			"question_time_limit": {"60"},
		})))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Вакансия уже существует")
		assert.Contains(t, w.Body.String(), "Что такое горутина?")
	})
}

func TestToBanner(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{fmt.Errorf("load: %w", service.ErrInvalidDraft), http.StatusUnprocessableEntity, "Проверьте заполнение формы"},
		{&backend_client.APIError{Status: 404, Message: "x"}, http.StatusNotFound, "Запись не найдена"},
		{circuitbreaker.ErrTooManyRequests, http.StatusServiceUnavailable, "Сервер временно недоступен, попробуйте позже"},
		{fmt.Errorf("%w: %w", backend_client.ErrNetwork, context.DeadlineExceeded), http.StatusGatewayTimeout, "Сервер не ответил вовремя"},
		{backend_client.ErrNetwork, http.StatusBadGateway, "Ошибка сети: сервер недоступен"},
		{fmt.Errorf("%w: eof", backend_client.ErrBadResponse), http.StatusBadGateway, "Сервер вернул некорректный ответ"},
		{&backend_client.APIError{Status: 400, Message: "bad title"}, http.StatusBadRequest, "bad title"},
		{&backend_client.APIError{Status: 500, Message: "HTTP error! status: 500"}, http.StatusBadGateway, "HTTP error! status: 500"},
		{errors.New("boom"), http.StatusInternalServerError, "Что-то пошло не так"},
	}
	for _, tc := range cases {
		code, banner := ToBanner(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, tc.message, banner.Message, tc.err.Error())
		assert.Equal(t, "error", banner.Kind)
	}
}
