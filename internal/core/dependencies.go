package core

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/qiniu/x/xlog"

	"hr_dashboard/configs"
	"hr_dashboard/global_models/global_cache"
	"hr_dashboard/internal/backend_client"
	"hr_dashboard/internal/dashboard_server/handlers"
	"hr_dashboard/internal/dashboard_server/service"
	"hr_dashboard/internal/dashboard_server/session"
	"hr_dashboard/internal/health"
	"hr_dashboard/internal/journal"
	"hr_dashboard/shared/cookie"
	"hr_dashboard/shared/inmemory_cache"
	postgresdb "hr_dashboard/shared/postgres_db"
	"hr_dashboard/shared/redis"
	"hr_dashboard/web"
)

// время, за которое журнал должен дописать очередь при остановке
const journalFlushTimeout = 10 * time.Second

// DashboardDependencies содержит всё, что нужно серверу дашборда
type DashboardDependencies struct {
	Config   *configs.DashboardConfig
	Handler  handlers.DashboardHandlerInterface
	Renderer *web.Renderer

	cache   global_cache.Cache
	client  *backend_client.Client
	journal *journal.Journal
	checker *health.Checker
	pgRepo  *postgresdb.PgRepo
	xl      *xlog.Logger
}

// InitDependencies собирает зависимости дашборда. Redis и PostgreSQL
// необязательны: без них кэш живёт в памяти, а журнал пишется в лог
func InitDependencies(ctx context.Context) (deps *DashboardDependencies, err error) {
	xl := xlog.New("core")
	xl.Infof("GOMAXPROCS: %d", runtime.GOMAXPROCS(-1))

	conf, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	deps = &DashboardDependencies{Config: conf, xl: xl}
	// при ошибке на середине закрываем то, что уже успели поднять
	defer func() {
		if err != nil {
			_ = deps.Close()
			deps = nil
		}
	}()

	if deps.cache, err = newCache(ctx, conf); err != nil {
		return nil, err
	}

	deps.client, err = backend_client.NewClient(conf.Backend, conf.CircuitBreakerConf, deps.cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	sink, err := deps.newJournalSink(ctx)
	if err != nil {
		return nil, err
	}
	deps.journal, err = journal.New(sink, conf.Journal)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}
	deps.journal.Start(ctx)

	deps.checker, err = health.NewChecker(deps.client, conf.HealthCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to create health checker: %w", err)
	}
	if err = deps.checker.Start(); err != nil {
		return nil, fmt.Errorf("failed to start health checker: %w", err)
	}

	dashboardService, err := service.NewDashboardService(deps.client, deps.journal, conf.Backend.BotName)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}

	sessions := session.NewManager(cookie.NewManager(*conf.CookieConf), conf.CookieConf.SessionMaxAge)

	deps.Handler, err = handlers.NewDashboardHandler(handlers.Dependencies{
		Service:  dashboardService,
		Sessions: sessions,
		Monitor:  deps.checker,
		Breaker:  deps.client,
		Journal:  deps.journal,
		Auth:     conf.Auth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	deps.Renderer, err = web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if conf.Auth.DevMode() {
		xl.Warnf("auth.login_url is empty: dev login without token is enabled")
	}
	return deps, nil
}

// newCache - Redis, если он настроен, иначе шардированный кэш в памяти
func newCache(ctx context.Context, conf *configs.DashboardConfig) (global_cache.Cache, error) {
	if conf.RedisConf != nil {
		cache, err := redis.NewRedisCache(ctx, conf.RedisConf)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return cache, nil
	}

	sharded, err := inmemory_cache.NewInmemoryShardedCache(conf.Cache.NumShards, conf.Cache.CleanupInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory cache: %w", err)
	}
	return inmemory_cache.NewCacheAdapter(sharded), nil
}

func (d *DashboardDependencies) newJournalSink(ctx context.Context) (journal.Sink, error) {
	if d.Config.PostgresDBConf == nil {
		d.xl.Infof("postgres is not configured, journal goes to log")
		return journal.NewLogSink(), nil
	}

	pgRepo, err := postgresdb.NewPgRepo(ctx, d.Config.PostgresDBConf)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	d.pgRepo = pgRepo

	sink, err := journal.NewPgSink(pgRepo.Pool())
	if err != nil {
		return nil, err
	}
	if err := sink.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

// Close останавливает фоновые задачи и закрывает соединения
func (d *DashboardDependencies) Close() error {
	var errs []error

	if d.checker != nil {
		d.checker.Stop()
	}
	if d.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), journalFlushTimeout)
		if err := d.journal.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
		cancel()
	}
	if d.client != nil {
		d.client.Close()
	}
	if d.cache != nil {
		if err := d.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if d.pgRepo != nil {
		d.pgRepo.Close()
	}

	return errors.Join(errs...)
}
