package dashboardserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr_dashboard/configs"
	"hr_dashboard/internal/dashboard_server/handlers"
	"hr_dashboard/internal/dashboard_server/service"
	"hr_dashboard/internal/dashboard_server/session"
	"hr_dashboard/internal/domain/models"
	"hr_dashboard/internal/listing"
	"hr_dashboard/internal/vacancy_draft"
	"hr_dashboard/shared/config"
	"hr_dashboard/shared/cookie"
	"hr_dashboard/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService - backend без данных
type stubService struct{}

func (stubService) ListCandidates(context.Context, listing.Filter, listing.SortState) (*service.CandidatesPage, error) {
	return &service.CandidatesPage{}, nil
}

func (stubService) CandidateDetails(context.Context, int, string) (*service.CandidateDetails, error) {
	return &service.CandidateDetails{}, nil
}

func (stubService) ArchiveCandidate(context.Context, service.Actor, int, string) error { return nil }

func (stubService) ListVacancies(context.Context) ([]models.Vacancy, error) { return nil, nil }

func (stubService) CreateVacancy(_ context.Context, _ service.Actor, d *vacancy_draft.Draft) (*models.Vacancy, error) {
	return &models.Vacancy{ID: d.ID}, nil
}

func (stubService) DeleteVacancy(context.Context, service.Actor, string) error { return nil }

func (stubService) BotLink(vacancyID string) string { return vacancy_draft.BotLink("bot", vacancyID) }

func newTestServer(t *testing.T) *DashboardServer {
	t.Helper()
	h, err := handlers.NewDashboardHandler(handlers.Dependencies{
		Service:  stubService{},
		Sessions: session.NewManager(cookie.NewManager(*config.DefaultCookieConfig()), time.Hour),
		Auth:     configs.AuthConfig{},
	})
	require.NoError(t, err)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	s, err := NewDashboardServer(context.Background(), config.UseDefaultServerConfig(), h, renderer)
	require.NoError(t, err)
	s.SetUpRoutes()
	return s
}

func (s *DashboardServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "is_authenticated", Value: "true"})
	return req
}

func TestNewDashboardServer(t *testing.T) {
	_, err := NewDashboardServer(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name     string
		req      *http.Request
		code     int
		location string
	}{
		{"hello", httptest.NewRequest(http.MethodGet, "/hello", nil), http.StatusOK, ""},
		{"health", httptest.NewRequest(http.MethodGet, "/health", nil), http.StatusOK, ""},
		{"login", httptest.NewRequest(http.MethodGet, "/login", nil), http.StatusOK, ""},
		{"корень без сессии", httptest.NewRequest(http.MethodGet, "/", nil), http.StatusFound, "/login"},
		{"корень", withSession(httptest.NewRequest(http.MethodGet, "/", nil)), http.StatusFound, "/candidates"},
		{"кандидаты без сессии", httptest.NewRequest(http.MethodGet, "/candidates", nil), http.StatusFound, "/login"},
		{"кандидаты", withSession(httptest.NewRequest(http.MethodGet, "/candidates", nil)), http.StatusOK, ""},
		{"архивация без сессии", httptest.NewRequest(http.MethodPost, "/candidates/1/v/archive", nil), http.StatusSeeOther, "/login"},
		{"карточка", withSession(httptest.NewRequest(http.MethodGet, "/candidates/1/v", nil)), http.StatusOK, ""},
		{"карточка с плохим id", withSession(httptest.NewRequest(http.MethodGet, "/candidates/0/v", nil)), http.StatusNotFound, ""},
		{"вакансии", withSession(httptest.NewRequest(http.MethodGet, "/vacancies", nil)), http.StatusOK, ""},
		{"форма вакансии", withSession(httptest.NewRequest(http.MethodGet, "/vacancies/create", nil)), http.StatusOK, ""},
		{"удаление", withSession(httptest.NewRequest(http.MethodPost, "/vacancies/v1/delete", nil)), http.StatusSeeOther, "/vacancies"},
		{"callback без токена", httptest.NewRequest(http.MethodGet, "/auth/callback", nil), http.StatusFound, "/login"},
		{"неизвестная страница", httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.serve(tc.req)
			assert.Equal(t, tc.code, w.Code)
			if tc.location != "" {
				assert.Equal(t, tc.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestSecurityHeadersAndStatic(t *testing.T) {
	s := newTestServer(t)

	w := s.serve(httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")

	w = s.serve(httptest.NewRequest(http.MethodGet, "/static/dashboard.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}

func TestShutdownBeforeRun(t *testing.T) {
	s := newTestServer(t)
	assert.NoError(t, s.Shutdown(context.Background()))
}
