// клиент backend API дашборда: авторизация запросов, разбор ошибок,
// circuit breaker, ограничение частоты и кэш GET ответов
package backend_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hr_dashboard/configs"
	"hr_dashboard/global_models/global_cache"
	"hr_dashboard/shared/circuitbreaker"
	"hr_dashboard/shared/config"
	"hr_dashboard/shared/rate_limiter"
)

const (
	apiPrefix    = "/api/v1"
	cachePrefix  = "backend:"
	maxBodyBytes = 10 << 20
)

// Client ходит в backend от имени оператора, токен берётся из контекста
type Client struct {
	baseURL      string
	httpClient   *http.Client
	breaker      *circuitbreaker.CircuitBreaker
	limiter      rate_limiter.RateLimiter // nil - без ограничения
	cache        global_cache.Cache       // nil - без кэша
	cacheTTL     time.Duration
	serviceToken string
}

// NewClient собирает клиент по конфигу. cache может быть nil
func NewClient(conf configs.BackendConfig, cbConf *config.CircuitBreakerConfig, cache global_cache.Cache) (*Client, error) {
	if conf.BaseURL == "" {
		return nil, errors.New("backend base url is empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: conf.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: conf.MaxIdleConns,
				IdleConnTimeout:     conf.IdleConnTimeout,
			},
		},
		breaker:      circuitbreaker.NewCircuitBreaker(cbConf, circuitbreaker.WithFailureClassifier(isBackendFailure)),
		cache:        cache,
		cacheTTL:     conf.CacheTTL,
		serviceToken: conf.ServiceToken,
	}

	if conf.MinRequestInterval > 0 {
		limiter, err := rate_limiter.NewChannelRateLimiter(conf.MinRequestInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		c.limiter = limiter
	}

	return c, nil
}

// Close останавливает лимитер, кэш закрывает его владелец
func (c *Client) Close() {
	if c.limiter != nil {
		c.limiter.Stop()
	}
}

// BreakerState - состояние circuit breaker для /health
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// Do выполняет запрос к backend: endpoint относительно /api/v1, body
// сериализуется в JSON, успешный ответ декодируется в out (если out не nil).
// GET ответы кэшируются по токену и endpoint
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	if method == http.MethodGet && c.cacheEnabled() {
		return c.cachedGet(ctx, endpoint, out)
	}

	data, err := c.execute(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) cachedGet(ctx context.Context, endpoint string, out any) error {
	xl := loggerFrom(ctx)
	key := c.cacheKey(ctx, endpoint)

	cached, err := c.cache.GetBytes(ctx, key)
	switch {
	case err == nil:
		if decodeErr := decode(cached, out); decodeErr == nil {
			return nil
		}
		// в кэше мусор - идём в backend
		xl.Warnf("cache entry %s is not decodable, refetching", endpoint)
	case !errors.Is(err, global_cache.ErrCacheMiss):
		xl.Warnf("cache get %s failed: %v", endpoint, err)
	}

	data, err := c.execute(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if err := decode(data, out); err != nil {
		return err
	}

	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		xl.Warnf("cache set %s failed: %v", endpoint, err)
	}
	return nil
}

// execute проводит запрос через лимитер и circuit breaker, отдаёт тело 2xx ответа
func (c *Client) execute(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var data []byte
	err := c.breaker.Execute(func() error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		var err error
		data, err = c.send(ctx, method, endpoint, payload, TokenFromContext(ctx))
		return err
	})
	if err != nil {
		c.logFailure(ctx, method, endpoint, err)
		return nil, err
	}
	return data, nil
}

// send - один http запрос без breaker и лимитера
func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, token string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer drainAndClose(resp)

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			data = nil
		}
		return nil, newAPIError(resp.StatusCode, data)
	}
	if readErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, readErr)
	}
	return data, nil
}

func (c *Client) logFailure(ctx context.Context, method, endpoint string, err error) {
	xl := loggerFrom(ctx)
	var apiErr *APIError
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		total, success, failures := c.breaker.GetStats()
		xl.Warnf("%s %s rejected: %v (total=%d success=%d failures=%d)", method, endpoint, err, total, success, failures)
	case errors.As(err, &apiErr):
		xl.Infof("%s %s -> %d: %s", method, endpoint, apiErr.Status, apiErr.Message)
	default:
		xl.Errorf("%s %s failed: %v", method, endpoint, err)
	}
}

func (c *Client) cacheEnabled() bool {
	return c.cache != nil && c.cacheTTL > 0
}

// ключ кэша: хэш токена + endpoint, чтобы операторы не видели кэш друг друга
func (c *Client) cacheKey(ctx context.Context, endpoint string) string {
	return cachePrefix + tokenHash(TokenFromContext(ctx)) + ":" + endpoint
}

// invalidate сбрасывает кэш endpoint'ов для текущего токена
func (c *Client) invalidate(ctx context.Context, endpoints ...string) {
	if !c.cacheEnabled() {
		return
	}
	for _, endpoint := range endpoints {
		if err := c.cache.Delete(ctx, c.cacheKey(ctx, endpoint)); err != nil {
			loggerFrom(ctx).Warnf("cache delete %s failed: %v", endpoint, err)
		}
	}
}

func tokenHash(token string) string {
	if token == "" {
		return "anonymous"
	}
	h := fnv.New64a()
	h.Write([]byte(token))
	return strconv.FormatUint(h.Sum64(), 16)
}

// decode разбирает JSON ответа, пустое тело допустимо
func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

// isBackendFailure - что считать сбоем backend для circuit breaker.
// 4xx - это нормальный ответ, отмена запроса оператором - тоже не сбой
func isBackendFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return true
}

// вычитываем остаток тела, чтобы соединение вернулось в пул
func drainAndClose(resp *http.Response) {
	const maxBodySlurp = 1 << 20
	_, _ = io.CopyN(io.Discard, resp.Body, maxBodySlurp)
	_ = resp.Body.Close()
}
