package tourapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"CultureSync/internal/config"
	"CultureSync/internal/interfaces"
	"CultureSync/internal/metrics"
	"CultureSync/internal/model"
	"CultureSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// 上游接口路径
const (
	EndpointFestival  = "/searchFestival2"
	EndpointAreaBased = "/areaBasedList2"
	EndpointKeyword   = "/searchKeyword2"
	EndpointDetail    = "/detailCommon2"
)

const (
	defaultRetryCount   = 3
	defaultRetryBackoff = time.Second
	maxBodyBytes        = 8 << 20
)

var _ interfaces.EventSource = (*Client)(nil)

// Client 한국관광공사 TourAPI（KorService2）适配器
type Client struct {
	cfg        *config.TourAPIConfig
	httpClient *http.Client
	logger     *logrus.Logger
	metrics    *metrics.Metrics
	cache      *responseCache

	retryCount   int
	retryBackoff time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
}

// Option 可选依赖注入（测试中替换 http 客户端与等待函数）
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient 创建 TourAPI 客户端；缺少服务密钥只告警，不阻止启动
func NewClient(cfg *config.TourAPIConfig, logger *logrus.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Client{
		cfg:          cfg,
		logger:       logger,
		cache:        newResponseCache(cfg.CacheSize, cfg.CacheTTL),
		retryCount:   cfg.RetryCount,
		retryBackoff: cfg.RetryBackoff,
		sleep:        sleepContext,
	}
	if c.retryCount < 0 {
		c.retryCount = defaultRetryCount
	}
	if c.retryBackoff <= 0 {
		c.retryBackoff = defaultRetryBackoff
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = httpclient.NewHTTPClient(cfg, logger)
	}
	if !cfg.HasCredential() {
		c.logger.Warn("PUBLIC_DATA_API_KEY 未配置，TourAPI 请求将由上游拒绝")
	}
	return c
}

// BuildURL 合并默认参数与调用方参数生成完整请求 URL（调用方参数优先）。纯函数，不会失败。
func (c *Client) BuildURL(endpoint string, params map[string]string) string {
	numOfRows := c.cfg.NumOfRows
	if numOfRows <= 0 {
		numOfRows = 50
	}
	all := map[string]string{
		"serviceKey": c.cfg.ServiceKey,
		"MobileOS":   c.cfg.MobileOS,
		"MobileApp":  c.cfg.MobileApp,
		"_type":      "json",
		"numOfRows":  strconv.Itoa(numOfRows),
		"pageNo":     "1",
		"arrange":    c.cfg.Arrange,
		"areaCode":   c.cfg.AreaCode,
	}
	for k, v := range params {
		all[k] = v
	}
	q := url.Values{}
	for k, v := range all {
		q.Set(k, v)
	}
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + endpoint + "?" + q.Encode()
}

// fetchWithRetry 单次 GET，失败（网络错误/超时/非2xx）时线性退避重试：第 n 次重试前等待 n*retryBackoff。
// 重试用尽后返回包装了最后一次错误的 ErrNetworkFailure。
func (c *Client) fetchWithRetry(ctx context.Context, rawURL, endpoint string) ([]byte, error) {
	start := time.Now()
	for attempt := 0; ; attempt++ {
		body, err := c.fetchOnce(ctx, rawURL)
		if err == nil {
			c.metrics.ObserveRequest(endpoint, "ok", time.Since(start).Seconds())
			return body, nil
		}
		if attempt >= c.retryCount || ctx.Err() != nil {
			c.metrics.ObserveRequest(endpoint, "failed", 0)
			return nil, fmt.Errorf("%w: %d 次尝试后仍失败: %w", ErrNetworkFailure, attempt+1, err)
		}
		c.logger.WithError(err).WithFields(logrus.Fields{
			"endpoint": endpoint,
			"retry":    fmt.Sprintf("%d/%d", attempt+1, c.retryCount),
		}).Warn("TourAPI 请求失败，准备重试")
		c.metrics.IncRetry(endpoint)
		if serr := c.sleep(ctx, c.retryBackoff*time.Duration(attempt+1)); serr != nil {
			c.metrics.ObserveRequest(endpoint, "failed", 0)
			return nil, fmt.Errorf("%w: %w", ErrNetworkFailure, serr)
		}
	}
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, redactError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Errorf("关闭TourAPI响应体失败: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("读取TourAPI响应失败: %w", err)
	}
	return body, nil
}

// getEvents 构造 URL → 查缓存 → 拉取 → 归一化；只有成功归一化的响应体才写入缓存
func (c *Client) getEvents(ctx context.Context, endpoint string, params map[string]string, partitionCode string) ([]model.Event, error) {
	rawURL := c.BuildURL(endpoint, params)
	source := strings.TrimPrefix(endpoint, "/")
	if body, ok := c.cache.Get(rawURL); ok {
		return c.Normalize(body, partitionCode, source)
	}
	body, err := c.fetchWithRetry(ctx, rawURL, endpoint)
	if err != nil {
		return nil, err
	}
	events, err := c.Normalize(body, partitionCode, source)
	if err != nil {
		return nil, err
	}
	c.cache.Put(rawURL, body)
	return events, nil
}

// sleepContext 可被取消的等待
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// redactError 去掉 *url.Error 中携带的 serviceKey，避免密钥进入日志
func redactError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = redactURL(ue.URL)
	}
	return err
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid-url>"
	}
	q := u.Query()
	if q.Has("serviceKey") {
		q.Set("serviceKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
