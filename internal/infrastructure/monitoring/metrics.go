package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Classification metrics
	Classifications *prometheus.CounterVec

	// Enrichment metrics
	FunFactLookups  *prometheus.CounterVec
	FunFactDuration prometheus.Histogram

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numclass_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "numclass_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "numclass_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{64, 128, 256, 512, 1024, 4096},
			},
			[]string{"method", "path"},
		),

		Classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numclass_classifications_total",
				Help: "Classifications by input branch",
			},
			[]string{"branch"},
		),

		FunFactLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numclass_funfact_lookups_total",
				Help: "Fun fact lookups by outcome",
			},
			[]string{"outcome"},
		),
		FunFactDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "numclass_funfact_duration_seconds",
				Help:    "Fun fact lookup duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "numclass_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus exposition handler for this registry.
// Compression is left to the server's gzip wrapper.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:           m.registry,
		DisableCompression: true,
	})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordClassification counts a classification in the given branch
// ("integer", "negative", "float" or "invalid").
func (m *Metrics) RecordClassification(branch string) {
	m.Classifications.WithLabelValues(branch).Inc()
}

// RecordFunFact records the outcome of a fun fact lookup
func (m *Metrics) RecordFunFact(outcome string, duration time.Duration) {
	m.FunFactLookups.WithLabelValues(outcome).Inc()
	m.FunFactDuration.Observe(duration.Seconds())
}
