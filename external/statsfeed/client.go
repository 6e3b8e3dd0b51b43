package statsfeed

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	basecache "github.com/riskibarqy/match-analytics/internal/platform/cache"
	"github.com/riskibarqy/match-analytics/internal/platform/logging"
	"github.com/riskibarqy/match-analytics/internal/platform/resilience"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 5 * time.Minute
	maxPages        = 50
	maxBodyBytes    = 6 << 20
)

var (
	errTransient = crerr.New("statsfeed transient failure")
	errNotFound  = crerr.New("statsfeed resource not found")

	tokenParamRegex = regexp.MustCompile(`token=[^&\s"']+`)
)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Cache holds the last good response per query. It must retain stale
	// entries for the fallback to work.
	Cache *basecache.Store
	// OnFallback is called each time a cached result is served because the
	// feed was unavailable.
	OnFallback func(resource string)
	// OnUnavailable is called when the feed failed and no cached result
	// could be served.
	OnUnavailable func(resource string)
}

// Client reads events and appearances from the remote stats feed. It
// implements event.Reader.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	token      string
	timeout    time.Duration
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	cache      *basecache.Store
	onFallback func(resource string)
	onMiss     func(resource string)
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "match-analytics-statsfeed",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 30 * time.Second,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	store := cfg.Cache
	if store == nil {
		store = basecache.NewStore(defaultCacheTTL, basecache.WithStaleRetention(24*time.Hour))
	}

	onFallback := cfg.OnFallback
	if onFallback == nil {
		onFallback = func(string) {}
	}
	onMiss := cfg.OnUnavailable
	if onMiss == nil {
		onMiss = func(string) {}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
		cache:      store,
		onFallback: onFallback,
		onMiss:     onMiss,
	}
}

func (c *Client) EventsFor(ctx context.Context, filter event.Filter) (event.Sequence, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	events, err := fetchCached(ctx, c, "events", eventQuery(filter), c.fetchEvents)
	if err != nil {
		return nil, err
	}
	return event.FromSlice(ctx, events, filter), nil
}

func (c *Client) AppearancesFor(ctx context.Context, filter event.Filter) ([]event.Appearance, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := fetchCached(ctx, c, "appearances", selectorQuery(filter), c.fetchAppearances)
	if err != nil {
		return nil, err
	}

	out := make([]event.Appearance, 0, len(items))
	for _, a := range items {
		if filter.MatchesAppearance(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// fetchCached serves a fresh cached result, otherwise calls the feed. When
// the feed is unavailable the last stored result is served instead.
func fetchCached[T any](
	ctx context.Context,
	c *Client,
	resource string,
	query url.Values,
	fetch func(context.Context, url.Values) ([]T, error),
) ([]T, error) {
	key := "statsfeed:" + resource + "?" + query.Encode()
	if cached, ok := c.cache.Get(ctx, key); ok {
		if items, ok := cached.([]T); ok {
			return slices.Clone(items), nil
		}
	}

	items, err := fetch(ctx, query)
	if err == nil {
		c.cache.Set(ctx, key, slices.Clone(items))
		return items, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if !isUnavailable(err) {
		return nil, err
	}

	if cached, storedAt, ok := c.cache.GetStale(ctx, key); ok {
		if items, ok := cached.([]T); ok {
			c.logger.WarnContext(ctx, "statsfeed unavailable, serving last known result",
				"resource", resource,
				"stored_at", storedAt,
				"error", err,
			)
			c.onFallback(resource)
			return slices.Clone(items), nil
		}
	}
	c.onMiss(resource)
	return nil, crerr.Mark(crerr.Wrapf(err, "statsfeed %s", resource), analytics.ErrDependencyUnavailable)
}

func (c *Client) fetchEvents(ctx context.Context, query url.Values) ([]event.Event, error) {
	out := make([]event.Event, 0, 256)
	for page := 1; page <= maxPages; page++ {
		var envelope eventsEnvelope
		if err := c.doJSON(ctx, "/events", withPage(query, page), &envelope); err != nil {
			if crerr.Is(err, errNotFound) {
				break
			}
			return nil, err
		}
		for _, row := range envelope.Data {
			e := row.toEvent(len(out))
			if err := event.Validate(e); err != nil {
				c.logger.WarnContext(ctx, "statsfeed returned invalid event", "event_id", e.ID, "error", err)
				return nil, err
			}
			out = append(out, e)
		}
		if !envelope.Pagination.HasMore {
			break
		}
	}
	event.Sort(out)
	return out, nil
}

func (c *Client) fetchAppearances(ctx context.Context, query url.Values) ([]event.Appearance, error) {
	out := make([]event.Appearance, 0, 64)
	for page := 1; page <= maxPages; page++ {
		var envelope appearancesEnvelope
		if err := c.doJSON(ctx, "/appearances", withPage(query, page), &envelope); err != nil {
			if crerr.Is(err, errNotFound) {
				break
			}
			return nil, err
		}
		for _, row := range envelope.Data {
			a := row.toAppearance()
			if err := event.ValidateAppearance(a); err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		if !envelope.Pagination.HasMore {
			break
		}
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}, isTransient)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "statsfeed circuit breaker rejected request", "state", c.breaker.State())
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode statsfeed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.send(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Mark(fmt.Errorf("send request: %s", redact(err.Error(), c.token)), errTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case status == fasthttp.StatusNotFound:
			return nil, errNotFound
		case isRetryableStatus(status):
			lastErr = crerr.Mark(fmt.Errorf("statsfeed status=%d body=%s", status, abbreviateBody(raw)), errTransient)
		default:
			return nil, fmt.Errorf("statsfeed status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 200 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "statsfeed request failed", "url", redact(fullURL, c.token), "error", lastErr)
	return nil, lastErr
}

// send performs one GET bounded by the client timeout and the context
// deadline, whichever comes first.
func (c *Client) send(ctx context.Context, fullURL string) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := resp.Body()
	if len(body) > maxBodyBytes {
		return nil, 0, fmt.Errorf("statsfeed body exceeds %d bytes", maxBodyBytes)
	}
	return append([]byte(nil), body...), resp.StatusCode(), nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func isUnavailable(err error) bool {
	return crerr.Is(err, errTransient) || crerr.Is(err, resilience.ErrCircuitOpen)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func eventQuery(filter event.Filter) url.Values {
	values := selectorQuery(filter)
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		slices.Sort(types)
		values.Set("type", strings.Join(types, ","))
	}
	return values
}

func selectorQuery(filter event.Filter) url.Values {
	values := url.Values{}
	if len(filter.MatchIDs) > 0 {
		ids := slices.Clone(filter.MatchIDs)
		slices.Sort(ids)
		values.Set("match_id", strings.Join(ids, ","))
	}
	if filter.PlayerID != "" {
		values.Set("player_id", filter.PlayerID)
	}
	if filter.TeamID != "" {
		values.Set("team_id", filter.TeamID)
	}
	return values
}

func withPage(query url.Values, page int) url.Values {
	out := url.Values{}
	for k, v := range query {
		out[k] = slices.Clone(v)
	}
	out.Set("page", fmt.Sprint(page))
	return out
}

func redact(value, token string) string {
	value = strings.TrimSpace(value)
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return tokenParamRegex.ReplaceAllString(value, "token=REDACTED")
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
