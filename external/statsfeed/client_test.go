package statsfeed

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	basecache "github.com/riskibarqy/match-analytics/internal/platform/cache"
	"github.com/riskibarqy/match-analytics/internal/platform/logging"
	"github.com/riskibarqy/match-analytics/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

const eventsPage = `{
  "data": [
    {"id": "e2", "seq": 2, "match_id": "m1", "player_id": "p1", "team_id": "t1", "type": "Shot", "minute": 10, "second": 5, "x": 88, "y": 45, "outcome": "Saved Off Target", "value": 0.12},
    {"id": "e1", "seq": 1, "match_id": "m1", "player_id": "p2", "team_id": "t1", "type": "Pass", "minute": 10, "second": 5, "x": 60, "y": 40, "outcome": "", "end_x": 80, "end_y": 45, "recipient_id": "p1"}
  ],
  "pagination": {"count": 2, "per_page": 100, "current_page": 1, "has_more": false}
}`

type feedServer struct {
	status   atomic.Int32
	body     atomic.Value
	requests atomic.Int32
	lastAuth atomic.Value
}

func newFeedServer(t *testing.T) (*feedServer, *fasthttp.Client) {
	t.Helper()

	fs := &feedServer{}
	fs.status.Store(fasthttp.StatusOK)
	fs.body.Store(eventsPage)

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		fs.requests.Add(1)
		fs.lastAuth.Store(string(ctx.Request.Header.Peek("Authorization")))
		ctx.SetStatusCode(int(fs.status.Load()))
		ctx.SetContentType("application/json")
		ctx.SetBodyString(fs.body.Load().(string))
	}}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	client := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	return fs, client
}

func newTestClient(httpClient *fasthttp.Client, store *basecache.Store, fallbacks *atomic.Int32) *Client {
	return NewClient(ClientConfig{
		HTTPClient: httpClient,
		BaseURL:    "http://statsfeed.test/v1/",
		Token:      "secret-token",
		Timeout:    time.Second,
		Logger:     logging.NewNop(),
		Cache:      store,
		OnFallback: func(string) { fallbacks.Add(1) },
	})
}

func TestEventsForDecodesAndOrders(t *testing.T) {
	fs, httpClient := newFeedServer(t)
	var fallbacks atomic.Int32
	client := newTestClient(httpClient, basecache.NewStore(time.Minute), &fallbacks)

	seq, err := client.EventsFor(context.Background(), event.Filter{MatchIDs: []string{"m1"}})
	require.NoError(t, err)
	events, err := event.Collect(seq)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, event.OutcomeComplete, events[0].Outcome)
	assert.Equal(t, event.OutcomeMissed, events[1].Outcome)
	assert.Equal(t, "Saved Off Target", events[1].RawOutcome)
	assert.Equal(t, "Bearer secret-token", fs.lastAuth.Load())

	again, err := event.Collect(seq)
	require.NoError(t, err)
	assert.Equal(t, events, again)
	assert.Equal(t, int32(1), fs.requests.Load())
}

func TestEventsForFallsBackToStaleCache(t *testing.T) {
	fs, httpClient := newFeedServer(t)
	var fallbacks atomic.Int32
	store := basecache.NewStore(time.Nanosecond, basecache.WithStaleRetention(time.Hour))
	client := newTestClient(httpClient, store, &fallbacks)
	filter := event.Filter{MatchIDs: []string{"m1"}}

	_, err := client.EventsFor(context.Background(), filter)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	fs.status.Store(fasthttp.StatusServiceUnavailable)

	seq, err := client.EventsFor(context.Background(), filter)
	require.NoError(t, err)
	events, err := event.Collect(seq)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, int32(1), fallbacks.Load())
}

func TestEventsForUnavailableWithoutCache(t *testing.T) {
	fs, httpClient := newFeedServer(t)
	fs.status.Store(fasthttp.StatusBadGateway)
	var fallbacks atomic.Int32
	client := newTestClient(httpClient, basecache.NewStore(time.Minute), &fallbacks)

	_, err := client.EventsFor(context.Background(), event.Filter{TeamID: "t1"})
	require.Error(t, err)
	assert.True(t, crerr.Is(err, analytics.ErrDependencyUnavailable))
	assert.Zero(t, fallbacks.Load())
}

func TestEventsForReportsUnavailable(t *testing.T) {
	fs, httpClient := newFeedServer(t)
	fs.status.Store(fasthttp.StatusBadGateway)
	var misses atomic.Int32
	client := NewClient(ClientConfig{
		HTTPClient:    httpClient,
		BaseURL:       "http://statsfeed.test/v1",
		Logger:        logging.NewNop(),
		OnUnavailable: func(string) { misses.Add(1) },
	})

	_, err := client.AppearancesFor(context.Background(), event.Filter{TeamID: "t1"})
	require.Error(t, err)
	assert.Equal(t, int32(1), misses.Load())
}

func TestEventsForRejectsInvalidRows(t *testing.T) {
	fs, httpClient := newFeedServer(t)
	fs.body.Store(`{"data":[{"id":"e1","match_id":"m1","player_id":"p1","team_id":"t1","type":"shot","minute":1,"x":120,"y":50,"outcome":"Goal","value":0.3}],"pagination":{}}`)
	var fallbacks atomic.Int32
	client := newTestClient(httpClient, basecache.NewStore(time.Minute), &fallbacks)

	_, err := client.EventsFor(context.Background(), event.Filter{MatchIDs: []string{"m1"}})
	require.Error(t, err)
	assert.True(t, crerr.Is(err, analytics.ErrInvalidMetricValue))
	assert.False(t, crerr.Is(err, analytics.ErrDependencyUnavailable))
}

func TestEventsForNotFoundIsEmpty(t *testing.T) {
	fs, httpClient := newFeedServer(t)
	fs.status.Store(fasthttp.StatusNotFound)
	var fallbacks atomic.Int32
	client := newTestClient(httpClient, basecache.NewStore(time.Minute), &fallbacks)

	seq, err := client.EventsFor(context.Background(), event.Filter{PlayerID: "p9"})
	require.NoError(t, err)
	events, err := event.Collect(seq)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventsForValidatesFilter(t *testing.T) {
	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	_, err := client.EventsFor(context.Background(), event.Filter{Types: []event.Type{event.TypeShot}})
	require.Error(t, err)
	assert.True(t, crerr.Is(err, analytics.ErrInvalidFilter))
}

func TestCircuitOpenCountsAsUnavailable(t *testing.T) {
	fs, httpClient := newFeedServer(t)
	fs.status.Store(fasthttp.StatusServiceUnavailable)
	client := NewClient(ClientConfig{
		HTTPClient: httpClient,
		BaseURL:    "http://statsfeed.test/v1",
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	filter := event.Filter{TeamID: "t1"}
	_, err := client.EventsFor(context.Background(), filter)
	require.Error(t, err)
	requests := fs.requests.Load()

	_, err = client.EventsFor(context.Background(), filter)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, analytics.ErrDependencyUnavailable))
	assert.Equal(t, requests, fs.requests.Load())
}

func TestRedact(t *testing.T) {
	got := redact("GET http://feed/events?token=abc&team_id=t1 secret", "secret")
	assert.Equal(t, "GET http://feed/events?token=REDACTED&team_id=t1 REDACTED", got)
}
