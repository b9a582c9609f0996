// описание сервера дашборда
package dashboardserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gin-gonic/gin/render"
	"github.com/qiniu/x/xlog"

	"hr_dashboard/internal/dashboard_server/dto"
	"hr_dashboard/internal/dashboard_server/handlers"
	"hr_dashboard/shared/config"
	"hr_dashboard/shared/middleware"
	"hr_dashboard/shared/toolkit"
	"hr_dashboard/web"
)

// структура сервера дашборда
type DashboardServer struct {
	httpServer *http.Server
	router     *gin.Engine
	config     *config.ServerConfig
	xl         *xlog.Logger
	Handler    handlers.DashboardHandlerInterface
}

// Конструктор для сервера
func NewDashboardServer(ctx context.Context, conf *config.ServerConfig, handler handlers.DashboardHandlerInterface, renderer render.HTMLRender) (*DashboardServer, error) {
	if conf == nil || handler == nil || renderer == nil {
		return nil, fmt.Errorf("server config, handler and renderer are required")
	}

	// создаём экземпляр роутера, логируем запросы сами в SetUpRequest
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	router.HTMLRender = renderer

	router.Use(gin.Recovery())
	router.Use(middleware.SetUpRequest())
	router.Use(toolkit.SecurityHeadersMiddleware())

	return &DashboardServer{
		router:  router,
		config:  conf,
		xl:      xlog.New("dashboard-server"),
		Handler: handler,
	}, nil
}

// Метод для маршрутизации сервера
func (s *DashboardServer) SetUpRoutes() {
	h := s.Handler

	s.router.StaticFS("/static", web.Static())
	s.router.NoRoute(h.NotFoundHandler)

	s.router.GET("/hello", h.EchoDashboardServer) // тестовый ендпоинт
	s.router.GET("/health", h.HealthHandler)

	s.router.GET("/login", h.LoginPageHandler)
	s.router.POST("/login", h.LoginHandler)
	s.router.GET("/auth/callback",
		middleware.ValidateMiddleware(&dto.CallbackQuery{}, binding.Query, h.RedirectOnInvalid("/login", "Не удалось войти: нет токена")),
		h.CallbackHandler)
	s.router.GET("/logout", h.LogoutHandler)

	// страницы оператора
	protected := s.router.Group("/", h.AuthGuard())
	{
		protected.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/candidates")
		})

		protected.GET("/candidates",
			middleware.ValidateMiddleware(&dto.CandidatesQuery{}, binding.Query, h.RedirectOnInvalid("/candidates", "")),
			h.CandidatesHandler)
		protected.GET("/candidates/:id/:vacancyId",
			middleware.ValidateMiddleware(&dto.CandidateURI{}, nil, h.CandidateNotFound),
			h.CandidateDetailsHandler)
		protected.POST("/candidates/:id/:vacancyId/archive",
			middleware.ValidateMiddleware(&dto.CandidateURI{}, nil, h.RedirectOnInvalid("/candidates", "Кандидат не найден")),
			h.ArchiveCandidateHandler)

		protected.GET("/vacancies", h.VacanciesHandler)
		protected.GET("/vacancies/create", h.CreateVacancyPageHandler)
		protected.POST("/vacancies/create",
			middleware.ValidateMiddleware(&dto.CreateVacancyForm{}, binding.Form, h.RedirectOnInvalid("/vacancies/create", "Некорректные данные формы")),
			h.CreateVacancyHandler)
		protected.POST("/vacancies/:id/delete",
			middleware.ValidateMiddleware(&dto.VacancyURI{}, nil, h.RedirectOnInvalid("/vacancies", "Вакансия не найдена")),
			h.DeleteVacancyHandler)
	}
}

// Метод для запуска сервера
func (s *DashboardServer) Run() error {
	s.SetUpRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Addr(),
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	// если установлен флаг о том, что нужно использовать HTTPS, то запускаем сервер, который работает с HTTPS
	if s.config.EnableTLS {
		tlsConfig, err := s.config.CreateTLSConfig()
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}

		s.httpServer.Addr = s.config.TLSAddr()
		s.httpServer.TLSConfig = tlsConfig

		s.xl.Infof("Starting HTTPS server on %s", s.config.TLSAddr())
		return s.httpServer.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	}

	s.xl.Infof("Starting HTTP server on %s", s.config.Addr())
	return s.httpServer.ListenAndServe()
}

// Метод для graceful shutdown
func (s *DashboardServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	// Останавливаем HTTP сервер
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.xl.Infof("Server shutdown completed")
	return nil
}
