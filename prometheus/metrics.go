// Package prometheus exposes analysis traffic metrics.
//
// Metrics keeps its own registry so several instances can coexist in one
// process, and additionally tracks the running totals behind the JSON
// metrics snapshot.
package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/IvanM-GM/replygen"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "replygen"

// Ensure Metrics implements replygen.StatsReporter.
var _ replygen.StatsReporter = (*Metrics)(nil)

// Metrics collects Prometheus metrics and running request statistics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	operations   *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
	comments     prometheus.Histogram
	info         *prometheus.GaugeVec

	requests   atomic.Int64
	errors     atomic.Int64
	totalNanos atomic.Int64
	started    time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMetrics creates and registers the metric set.
func NewMetrics(version string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
		Now:      time.Now,
	}

	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	m.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	m.operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Pipeline operations by outcome code",
		},
		[]string{"operation", "code"},
	)
	m.opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Pipeline operation duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)
	m.comments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "comments_generated",
			Help:      "Comments returned per successful analysis",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
	)
	m.info = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "service_info",
			Help:      "Service information",
		},
		[]string{"version"},
	)

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.operations,
		m.opDuration,
		m.comments,
		m.info,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.info.WithLabelValues(version).Set(1)

	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus exposition handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware returns gin middleware that records HTTP request metrics.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.httpRequests.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Observe records one pipeline operation. err may be nil.
func (m *Metrics) Observe(operation string, elapsed time.Duration, err error) {
	code := "ok"
	if err != nil {
		code = replygen.ErrorCode(err)
	}
	m.operations.WithLabelValues(operation, code).Inc()
	m.opDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// recordAnalysis updates the running totals for one analyze call.
func (m *Metrics) recordAnalysis(elapsed time.Duration, comments int, err error) {
	m.requests.Add(1)
	m.totalNanos.Add(int64(elapsed))
	if err != nil {
		m.errors.Add(1)
		return
	}
	m.comments.Observe(float64(comments))
}

// Stats returns a snapshot of analyze traffic since m was created.
func (m *Metrics) Stats() replygen.Stats {
	requests := m.requests.Load()
	errs := m.errors.Load()

	s := replygen.Stats{
		RequestsTotal: requests,
		ErrorsTotal:   errs,
		Uptime:        m.Now().Sub(m.started).Seconds(),
	}
	if requests > 0 {
		s.ErrorRate = float64(errs) / float64(requests)
		s.AverageResponseTime = time.Duration(m.totalNanos.Load() / requests).Seconds()
	}
	return s
}

// Ensure Analyzer implements replygen.PostAnalyzer.
var _ replygen.PostAnalyzer = (*Analyzer)(nil)

// Analyzer wraps a PostAnalyzer and records each call in Metrics.
type Analyzer struct {
	next    replygen.PostAnalyzer
	metrics *Metrics
}

// NewAnalyzer creates a new instrumented Analyzer.
func NewAnalyzer(next replygen.PostAnalyzer, metrics *Metrics) *Analyzer {
	return &Analyzer{next: next, metrics: metrics}
}

// Analyze delegates to the wrapped analyzer and records the outcome.
func (a *Analyzer) Analyze(ctx context.Context, url string, commentCount int) (result *replygen.Analysis, err error) {
	defer func(begin time.Time) {
		elapsed := time.Since(begin)
		if err != nil {
			if e, ok := replygen.ErrorElapsed(err); ok {
				elapsed = e
			}
		} else {
			elapsed = result.Elapsed
		}

		n := 0
		if result != nil {
			n = len(result.Comments)
		}
		a.metrics.Observe("analyze", elapsed, err)
		a.metrics.recordAnalysis(elapsed, n, err)
	}(time.Now())
	return a.next.Analyze(ctx, url, commentCount)
}

// Post delegates to the wrapped analyzer and records the outcome.
func (a *Analyzer) Post(ctx context.Context, url string) (post *replygen.Post, err error) {
	defer func(begin time.Time) {
		a.metrics.Observe("post", time.Since(begin), err)
	}(time.Now())
	return a.next.Post(ctx, url)
}

// Sentiment delegates to the wrapped analyzer and records its duration.
func (a *Analyzer) Sentiment(ctx context.Context, text string) replygen.SentimentReport {
	defer func(begin time.Time) {
		a.metrics.Observe("sentiment", time.Since(begin), nil)
	}(time.Now())
	return a.next.Sentiment(ctx, text)
}

// Healthy delegates to the wrapped analyzer.
func (a *Analyzer) Healthy(ctx context.Context) bool {
	return a.next.Healthy(ctx)
}
