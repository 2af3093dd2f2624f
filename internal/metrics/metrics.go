// Package metrics provides Prometheus metrics for element resolution and the HTTP boundary
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ResolverMetrics counts how combinations are answered.
// It satisfies element.Recorder.
type ResolverMetrics struct {
	cacheHitsTotal          *prometheus.CounterVec
	cacheMissesTotal        prometheus.Counter
	llmFailuresTotal        prometheus.Counter
	malformedResponsesTotal prometheus.Counter
	audioFailuresTotal      prometheus.Counter
}

// NewResolverMetrics creates and registers resolver metrics
func NewResolverMetrics(registerer prometheus.Registerer) (*ResolverMetrics, error) {
	m := &ResolverMetrics{
		cacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lingocraft_combination_cache_hits_total",
				Help: "Total number of combinations answered from a cache",
			},
			[]string{"layer"}, // layer: memory, store
		),
		cacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lingocraft_combination_cache_misses_total",
			Help: "Total number of combinations sent to the LLM",
		}),
		llmFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lingocraft_llm_failures_total",
			Help: "Total number of LLM calls that failed after retries",
		}),
		malformedResponsesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lingocraft_llm_malformed_responses_total",
			Help: "Total number of LLM answers that could not be parsed",
		}),
		audioFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lingocraft_audio_failures_total",
			Help: "Total number of failed speech syntheses",
		}),
	}
	if err := registerer.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements prometheus.Collector
func (m *ResolverMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.cacheHitsTotal.Describe(ch)
	m.cacheMissesTotal.Describe(ch)
	m.llmFailuresTotal.Describe(ch)
	m.malformedResponsesTotal.Describe(ch)
	m.audioFailuresTotal.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *ResolverMetrics) Collect(ch chan<- prometheus.Metric) {
	m.cacheHitsTotal.Collect(ch)
	m.cacheMissesTotal.Collect(ch)
	m.llmFailuresTotal.Collect(ch)
	m.malformedResponsesTotal.Collect(ch)
	m.audioFailuresTotal.Collect(ch)
}

func (m *ResolverMetrics) CacheHit(layer string) {
	m.cacheHitsTotal.WithLabelValues(layer).Inc()
}

func (m *ResolverMetrics) CacheMiss() {
	m.cacheMissesTotal.Inc()
}

func (m *ResolverMetrics) LLMFailure() {
	m.llmFailuresTotal.Inc()
}

func (m *ResolverMetrics) MalformedResponse() {
	m.malformedResponsesTotal.Inc()
}

func (m *ResolverMetrics) AudioFailure() {
	m.audioFailuresTotal.Inc()
}

// HTTPMetrics counts and times requests by route pattern.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers HTTP metrics
func NewHTTPMetrics(registerer prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lingocraft_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lingocraft_http_request_duration_seconds",
				Help:    "Time taken to serve HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	if err := registerer.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements prometheus.Collector
func (m *HTTPMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *HTTPMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
}

func (m *HTTPMetrics) ObserveRequest(method, route string, statusCode int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
