package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limaJavier/classcomposer/pkg/service"
)

// Metrics holds the Prometheus collectors of the HTTP binding and the composer
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	composeDuration *prometheus.HistogramVec
	composeChecks   *prometheus.HistogramVec
	schedulesFound  *prometheus.HistogramVec
	budgetExhausted prometheus.Counter
	composeErrors   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	composeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "composer_search_duration_seconds",
		Help:    "Duration of schedule searches in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"mode"})

	composeChecks := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "composer_feasibility_checks",
		Help:    "Feasibility checks performed per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	}, []string{"mode"})

	schedulesFound := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "composer_schedules",
		Help:    "Schedules returned per search",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
	}, []string{"mode"})

	budgetExhausted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "composer_budget_exhausted_total",
		Help: "Searches stopped by the step budget",
	})

	composeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "composer_errors_total",
		Help: "Rejected compose requests by error code",
	}, []string{"code"})

	registry.MustRegister(requestDuration, requestTotal, composeDuration, composeChecks, schedulesFound, budgetExhausted, composeErrors)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		composeDuration: composeDuration,
		composeChecks:   composeChecks,
		schedulesFound:  schedulesFound,
		budgetExhausted: budgetExhausted,
		composeErrors:   composeErrors,
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

func (m *Metrics) ObserveCompose(result *service.ComposeResult) {
	if m == nil || result == nil {
		return
	}
	mode := result.Stats.Mode
	m.composeDuration.WithLabelValues(mode).Observe(result.Stats.Elapsed.Seconds())
	m.composeChecks.WithLabelValues(mode).Observe(float64(result.Stats.Checks))
	m.schedulesFound.WithLabelValues(mode).Observe(float64(len(result.Schedules)))
	if result.Stats.Exhausted {
		m.budgetExhausted.Inc()
	}
}

func (m *Metrics) ObserveComposeError(code string) {
	if m == nil {
		return
	}
	m.composeErrors.WithLabelValues(code).Inc()
}
