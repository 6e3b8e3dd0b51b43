// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "match_analytics"

// Recorder owns every collector on a private registry.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	schemaViolations    *prometheus.CounterVec
	feedFallbacks       *prometheus.CounterVec
	feedUnavailable     *prometheus.CounterVec
}

type Option func(*Recorder)

func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(r *Recorder) {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: defaultNamespace,
		buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status_code"})
	r.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   r.buckets,
	}, []string{"route", "method"})
	r.schemaViolations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "schema_violations_total",
		Help:      "Responses aborted because a payload broke its wire invariants.",
	}, []string{"route"})
	r.feedFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "statsfeed_fallbacks_total",
		Help:      "Stats feed calls answered from the last known cached value.",
	}, []string{"resource"})
	r.feedUnavailable = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "statsfeed_unavailable_total",
		Help:      "Stats feed calls that failed without a cached fallback.",
	}, []string{"resource"})
	return r
}

// ObserveHTTP records one served request. A nil recorder is a no-op, as
// are the other recording methods.
func (r *Recorder) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (r *Recorder) SchemaViolation(route string) {
	if r == nil {
		return
	}
	r.schemaViolations.WithLabelValues(route).Inc()
}

func (r *Recorder) FeedFallback(resource string) {
	if r == nil {
		return
	}
	r.feedFallbacks.WithLabelValues(resource).Inc()
}

func (r *Recorder) FeedUnavailable(resource string) {
	if r == nil {
		return
	}
	r.feedUnavailable.WithLabelValues(resource).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the exposition format for /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
