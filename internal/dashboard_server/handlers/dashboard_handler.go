// описание хэндлеров дашборда: страницы, формы и служебные ендпоинты
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hr_dashboard/configs"
	"hr_dashboard/internal/backend_client"
	"hr_dashboard/internal/dashboard_server/converters"
	"hr_dashboard/internal/dashboard_server/dto"
	"hr_dashboard/internal/dashboard_server/service"
	"hr_dashboard/internal/dashboard_server/session"
	"hr_dashboard/internal/health"
	"hr_dashboard/internal/vacancy_draft"
	"hr_dashboard/shared/circuitbreaker"
	"hr_dashboard/shared/middleware"
	"hr_dashboard/web"
)

// описание интерфейса слоя хэндлеров
type DashboardHandlerInterface interface {
	EchoDashboardServer(c *gin.Context)
	HealthHandler(c *gin.Context)
	NotFoundHandler(c *gin.Context)

	LoginPageHandler(c *gin.Context)
	LoginHandler(c *gin.Context)
	CallbackHandler(c *gin.Context)
	LogoutHandler(c *gin.Context)

	CandidatesHandler(c *gin.Context)
	CandidateDetailsHandler(c *gin.Context)
	ArchiveCandidateHandler(c *gin.Context)

	VacanciesHandler(c *gin.Context)
	CreateVacancyPageHandler(c *gin.Context)
	CreateVacancyHandler(c *gin.Context)
	DeleteVacancyHandler(c *gin.Context)

	AuthGuard() gin.HandlerFunc
	RedirectOnInvalid(target, message string) middleware.ValidationFailed
	CandidateNotFound(c *gin.Context, errs map[string]string)
}

// BackendMonitor - последняя проверка доступности backend
type BackendMonitor interface {
	Status() health.Status
	BackendDown() bool
}

type BreakerStater interface {
	BreakerState() circuitbreaker.State
}

type JournalStats interface {
	Pending() int
}

// Dependencies - всё, что нужно хэндлеру
type Dependencies struct {
	Service  service.DashboardServiceInterface
	Sessions *session.Manager
	Monitor  BackendMonitor
	Breaker  BreakerStater
	Journal  JournalStats
	Auth     configs.AuthConfig
}

// структура хэндлера дашборда
type DashboardHandler struct {
	service  service.DashboardServiceInterface
	sessions *session.Manager
	monitor  BackendMonitor
	breaker  BreakerStater
	journal  JournalStats
	auth     configs.AuthConfig
}

// конструктор для слоя хэндлеров
func NewDashboardHandler(deps Dependencies) (*DashboardHandler, error) {
	if deps.Service == nil || deps.Sessions == nil {
		return nil, errors.New("service and session manager are required")
	}
	return &DashboardHandler{
		service:  deps.Service,
		sessions: deps.Sessions,
		monitor:  deps.Monitor,
		breaker:  deps.Breaker,
		journal:  deps.Journal,
		auth:     deps.Auth,
	}, nil
}

// метод проверки работоспособности слоя хэндлеров
func (h *DashboardHandler) EchoDashboardServer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from dashboard server!"})
}

// HealthHandler - состояние дашборда и последней проверки backend
func (h *DashboardHandler) HealthHandler(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Backend: "unknown"}

	if h.monitor != nil {
		st := h.monitor.Status()
		if st.Checked {
			resp.Backend = "down"
			if st.Up {
				resp.Backend = "up"
			}
			resp.LastCheck = st.LastCheck.Format(time.RFC3339)
			resp.LatencyMs = st.Latency.Milliseconds()
			resp.Error = st.Error
		}
	}
	if h.breaker != nil {
		resp.BreakerState = h.breaker.BreakerState().String()
	}
	if h.journal != nil {
		resp.JournalQueue = h.journal.Pending()
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) NotFoundHandler(c *gin.Context) {
	h.render(c, http.StatusNotFound, web.PageError, "", "Страница не найдена", dto.ErrorPage{
		Heading:   "Страница не найдена",
		BackURL:   "/candidates",
		BackLabel: "Вернуться к списку",
	})
}

// AuthGuard - проверка сессии для страниц оператора
func (h *DashboardHandler) AuthGuard() gin.HandlerFunc {
	return h.sessions.AuthGuard()
}

// RedirectOnInvalid - запрос не разобрался: уведомление (если есть) и редирект на target
func (h *DashboardHandler) RedirectOnInvalid(target, message string) middleware.ValidationFailed {
	return func(c *gin.Context, errs map[string]string) {
		middleware.Logger(c).Warnf("invalid request %s: %v", c.Request.URL.Path, errs)
		if message != "" {
			h.flash(c, session.FlashError, message)
		}
		c.Redirect(redirectCode(c), target)
	}
}

// CandidateNotFound - адрес карточки кандидата не разобрался
func (h *DashboardHandler) CandidateNotFound(c *gin.Context, _ map[string]string) {
	h.render(c, http.StatusNotFound, web.PageCandidateDetails, "/candidates", "Кандидат",
		converters.CandidateDetailsToDTO(nil))
}

// ---- вход и выход ----

func (h *DashboardHandler) LoginPageHandler(c *gin.Context) {
	if _, ok := h.sessions.Current(c); ok {
		c.Redirect(http.StatusFound, "/candidates")
		return
	}
	h.render(c, http.StatusOK, web.PageLogin, "", "Вход", dto.LoginPage{DevMode: h.auth.DevMode()})
}

// LoginHandler отправляет на сервис авторизации, без него (dev режим) пускает сразу
func (h *DashboardHandler) LoginHandler(c *gin.Context) {
	if h.auth.DevMode() {
		if err := h.sessions.LoginDev(c); err != nil {
			middleware.Logger(c).Errorf("dev login failed: %v", err)
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.Redirect(http.StatusSeeOther, "/candidates")
		return
	}

	target, err := url.Parse(h.auth.LoginURL)
	if err != nil {
		middleware.Logger(c).Errorf("bad login url %q: %v", h.auth.LoginURL, err)
		h.flash(c, session.FlashError, "Сервис авторизации недоступен")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	q := target.Query()
	q.Set("redirect_uri", h.auth.CallbackURL())
	target.RawQuery = q.Encode()

	c.Redirect(http.StatusSeeOther, target.String())
}

// CallbackHandler принимает токен от сервиса авторизации
func (h *DashboardHandler) CallbackHandler(c *gin.Context) {
	req, ok := validated[dto.CallbackQuery](c)
	if !ok {
		return
	}

	if err := h.sessions.Login(c, req.Token); err != nil {
		middleware.Logger(c).Warnf("rejected auth token: %v", err)
		h.flash(c, session.FlashError, "Не удалось войти: токен недействителен")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	middleware.Logger(c).Infof("operator logged in")
	c.Redirect(http.StatusFound, "/candidates")
}

func (h *DashboardHandler) LogoutHandler(c *gin.Context) {
	h.sessions.Logout(c)
	if h.auth.LogoutURL != "" {
		c.Redirect(http.StatusFound, h.auth.LogoutURL)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// ---- кандидаты ----

func (h *DashboardHandler) CandidatesHandler(c *gin.Context) {
	query, ok := validated[dto.CandidatesQuery](c)
	if !ok {
		return
	}
	filter, sort := converters.CandidatesQueryToDomain(*query)

	page, err := h.service.ListCandidates(h.backendContext(c), filter, sort)
	if err != nil {
		if h.expireOnUnauthorized(c, err) {
			return
		}
		code, banner := h.failure(c, "load candidates", err)
		h.render(c, code, web.PageCandidates, "/candidates", "Кандидаты",
			converters.CandidatesPageToDTO(*query, sort, nil), banner)
		return
	}

	h.render(c, http.StatusOK, web.PageCandidates, "/candidates", "Кандидаты",
		converters.CandidatesPageToDTO(*query, sort, page))
}

func (h *DashboardHandler) CandidateDetailsHandler(c *gin.Context) {
	uri, ok := validated[dto.CandidateURI](c)
	if !ok {
		return
	}

	details, err := h.service.CandidateDetails(h.backendContext(c), uri.ID, uri.VacancyID)
	if err != nil {
		if h.expireOnUnauthorized(c, err) {
			return
		}
		if errors.Is(err, backend_client.ErrNotFound) {
			h.render(c, http.StatusNotFound, web.PageCandidateDetails, "/candidates", "Кандидат",
				converters.CandidateDetailsToDTO(nil))
			return
		}
		code, banner := h.failure(c, "load candidate", err)
		h.render(c, code, web.PageCandidateDetails, "/candidates", "Кандидат",
			converters.CandidateDetailsToDTO(nil), banner)
		return
	}

	h.render(c, http.StatusOK, web.PageCandidateDetails, "/candidates", details.Info.Candidate.FullName,
		converters.CandidateDetailsToDTO(details))
}

func (h *DashboardHandler) ArchiveCandidateHandler(c *gin.Context) {
	uri, ok := validated[dto.CandidateURI](c)
	if !ok {
		return
	}

	err := h.service.ArchiveCandidate(h.backendContext(c), h.actor(c), uri.ID, uri.VacancyID)
	if err != nil {
		if h.expireOnUnauthorized(c, err) {
			return
		}
		_, banner := h.failure(c, "archive candidate", err)
		h.flash(c, session.FlashError, "Не удалось архивировать кандидата: "+banner.Message)
	} else {
		h.flash(c, session.FlashSuccess, "Кандидат перемещён в архив")
	}
	c.Redirect(http.StatusSeeOther, backTo(c, "/candidates"))
}

// ---- вакансии ----

func (h *DashboardHandler) VacanciesHandler(c *gin.Context) {
	vacancies, err := h.service.ListVacancies(h.backendContext(c))
	if err != nil {
		if h.expireOnUnauthorized(c, err) {
			return
		}
		code, banner := h.failure(c, "load vacancies", err)
		h.render(c, code, web.PageVacancies, "/vacancies", "Вакансии",
			converters.VacanciesToDTO(nil, h.service.BotLink), banner)
		return
	}

	h.render(c, http.StatusOK, web.PageVacancies, "/vacancies", "Вакансии",
		converters.VacanciesToDTO(vacancies, h.service.BotLink))
}

func (h *DashboardHandler) CreateVacancyPageHandler(c *gin.Context) {
	draft := vacancy_draft.New()
	h.renderDraft(c, http.StatusOK, draft, false)
}

// CreateVacancyHandler - любая кнопка формы. Кроме submit, кнопки только меняют
// черновик, и форма рисуется заново
func (h *DashboardHandler) CreateVacancyHandler(c *gin.Context) {
	form, ok := validated[dto.CreateVacancyForm](c)
	if !ok {
		return
	}
	draft := form.ToDraft()

	action, err := vacancy_draft.ParseAction(form.Action)
	if err != nil {
		middleware.Logger(c).Warnf("bad form action: %v", err)
		h.renderDraft(c, http.StatusBadRequest, draft, false,
			dto.Banner{Kind: bannerError, Message: "Неизвестное действие формы"})
		return
	}
	if action.Kind != vacancy_draft.ActionSubmit {
		draft.Apply(action)
		h.renderDraft(c, http.StatusOK, draft, false)
		return
	}

	created, err := h.service.CreateVacancy(h.backendContext(c), h.actor(c), draft)
	if err != nil {
		if h.expireOnUnauthorized(c, err) {
			return
		}
		if errors.Is(err, service.ErrInvalidDraft) {
			code, _ := ToBanner(err)
			h.renderDraft(c, code, draft, true, dto.Banner{Kind: bannerError, Message: draft.FirstError()})
			return
		}
		code, banner := h.failure(c, "create vacancy", err)
		h.renderDraft(c, code, draft, false, banner)
		return
	}

	if created != nil {
		middleware.Logger(c).Infof("vacancy %s created", created.ID)
	}
	h.flash(c, session.FlashSuccess, "Вакансия успешно создана!")
	c.Redirect(http.StatusSeeOther, "/vacancies")
}

func (h *DashboardHandler) DeleteVacancyHandler(c *gin.Context) {
	uri, ok := validated[dto.VacancyURI](c)
	if !ok {
		return
	}

	if err := h.service.DeleteVacancy(h.backendContext(c), h.actor(c), uri.ID); err != nil {
		if h.expireOnUnauthorized(c, err) {
			return
		}
		_, banner := h.failure(c, "delete vacancy", err)
		h.flash(c, session.FlashError, "Не удалось удалить вакансию: "+banner.Message)
	} else {
		h.flash(c, session.FlashSuccess, "Вакансия удалена")
	}
	c.Redirect(http.StatusSeeOther, "/vacancies")
}

// ---- вспомогательные ----

func (h *DashboardHandler) renderDraft(c *gin.Context, code int, draft *vacancy_draft.Draft, showErrors bool, banners ...dto.Banner) {
	h.render(c, code, web.PageCreateVacancy, "/vacancies/create", "Создание вакансии",
		converters.DraftToDTO(draft, h.service.BotLink(draft.ID), showErrors), banners...)
}

// render собирает общую часть страницы: оператор, flash из прошлого запроса,
// баннер недоступности backend
func (h *DashboardHandler) render(c *gin.Context, code int, page, active, title string, content any, banners ...dto.Banner) {
	layout := dto.Layout{
		Title:     title,
		Active:    active,
		Operator:  session.FromContext(c).Operator,
		RequestID: c.GetString(middleware.RequestIDKey),
	}
	if flash := h.sessions.PopFlash(c); flash != nil {
		layout.Banners = append(layout.Banners, dto.Banner{Kind: string(flash.Kind), Message: flash.Message})
	}
	layout.Banners = append(layout.Banners, banners...)
	if h.monitor != nil && layout.Operator != "" {
		layout.BackendDown = h.monitor.BackendDown()
	}

	c.HTML(code, page, dto.Page{Layout: layout, Content: content})
}

// backendContext - контекст запроса с токеном оператора и логгером запроса
func (h *DashboardHandler) backendContext(c *gin.Context) context.Context {
	ctx := backend_client.WithToken(c.Request.Context(), session.FromContext(c).Token)
	return backend_client.WithLogger(ctx, middleware.Logger(c))
}

func (h *DashboardHandler) actor(c *gin.Context) service.Actor {
	return service.Actor{
		Operator:  session.FromContext(c).Operator,
		RequestID: c.GetString(middleware.RequestIDKey),
	}
}

// expireOnUnauthorized - backend не принял токен: сессию сбрасываем, отправляем на /login
func (h *DashboardHandler) expireOnUnauthorized(c *gin.Context, err error) bool {
	if !backend_client.IsUnauthorized(err) {
		return false
	}
	middleware.Logger(c).Warnf("backend rejected session: %v", err)
	h.sessions.Expire(c)
	return true
}

func (h *DashboardHandler) failure(c *gin.Context, op string, err error) (int, dto.Banner) {
	code, banner := ToBanner(err)
	middleware.Logger(c).Errorf("%s failed (%d): %v", op, code, err)
	return code, banner
}

func (h *DashboardHandler) flash(c *gin.Context, kind session.FlashKind, message string) {
	if err := h.sessions.SetFlash(c, kind, message); err != nil {
		middleware.Logger(c).Warnf("failed to set flash: %v", err)
	}
}

// после POST браузер должен прийти на новую страницу GET'ом
func redirectCode(c *gin.Context) int {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		return http.StatusFound
	}
	return http.StatusSeeOther
}

// validated достаёт модель, которую положил ValidateMiddleware
func validated[T any](c *gin.Context) (*T, bool) {
	val, exists := c.Get(middleware.ValidatedDataKey)
	if !exists {
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	model, ok := val.(*T)
	if !ok {
		middleware.Logger(c).Errorf("validated data has type %T", val)
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	return model, true
}

// backTo - куда вернуться после действия: на страницу, с которой пришли,
// если это страница кандидатов этого же сервера
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	if !strings.HasPrefix(ref.Path, fallback) {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
