package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nekogravitycat/dev-resources-backend/internal/resource"
)

// Metrics owns a private Prometheus registry with HTTP and domain collectors.
// It implements resource.Observer.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	catalogQueries  *prometheus.CounterVec
	ownedMutations  *prometheus.CounterVec
	activeSessions  prometheus.GaugeFunc
}

var _ resource.Observer = (*Metrics)(nil)

// New registers the collectors. sessions may be nil; when set, the number of
// live browse sessions is exported as a gauge.
func New(sessions *resource.SessionStore) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		catalogQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Catalog queries by sort key",
		}, []string{"sort"}),
		ownedMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "owned_resource_mutations_total",
			Help: "Writes to user-owned resource lists by operation",
		}, []string{"op"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.catalogQueries,
		m.ownedMutations,
	)

	if sessions != nil {
		m.activeSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "browse_sessions_active",
			Help: "Live browse sessions",
		}, func() float64 { return float64(sessions.Len()) })
		registry.MustRegister(m.activeSessions)
	}

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

func (m *Metrics) CatalogQueried(sort resource.SortKey) {
	label := string(sort)
	if label == "" {
		label = "none"
	}
	m.catalogQueries.WithLabelValues(label).Inc()
}

func (m *Metrics) OwnedMutated(op string) {
	m.ownedMutations.WithLabelValues(op).Inc()
}

// Middleware records request count and latency keyed by route template.
func Middleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
