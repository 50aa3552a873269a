package metricsvc

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/fluidlab/core"
)

// PrometheusMetrics counts HTTP traffic and domain events on its own registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	calculations *prometheus.CounterVec
	quizzes      *prometheus.CounterVec
	quizScore    *prometheus.HistogramVec
	stations     *prometheus.CounterVec
	explanations *prometheus.CounterVec
	certificates *prometheus.CounterVec
}

var _ core.Metrics = (*PrometheusMetrics)(nil)

func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flow_calculations_verified_total",
			Help:      "Submitted flow calculations by component and outcome",
		}, []string{"component", "outcome"}),
		quizzes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_attempts_completed_total",
			Help:      "Completed quiz attempts by experiment",
		}, []string{"experiment"}),
		quizScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quiz_score_ratio",
			Help:      "Share of correct answers of completed quiz attempts",
			Buckets:   prometheus.LinearBuckets(0, 0.25, 5),
		}, []string{"experiment"}),
		stations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lab_stations_completed_total",
			Help:      "Completed lab stations by kind",
		}, []string{"station"}),
		explanations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_explanations_total",
			Help:      "Assistant explanations by topic and outcome",
		}, []string{"topic", "outcome"}),
		certificates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificates_issued_total",
			Help:      "Issued certificates by experiment",
		}, []string{"experiment"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.calculations, m.quizzes, m.quizScore, m.stations, m.explanations, m.certificates,
	)
	return m
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// ObserveRequest records one served HTTP request.
func (m *PrometheusMetrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *PrometheusMetrics) CalculationVerified(component string, accepted bool) {
	m.calculations.WithLabelValues(component, outcome(accepted)).Inc()
}

func (m *PrometheusMetrics) QuizCompleted(experimentID string, score, total int) {
	m.quizzes.WithLabelValues(experimentID).Inc()
	if total > 0 {
		m.quizScore.WithLabelValues(experimentID).Observe(float64(score) / float64(total))
	}
}

func (m *PrometheusMetrics) StationCompleted(station string) {
	m.stations.WithLabelValues(station).Inc()
}

func (m *PrometheusMetrics) ExplanationServed(topic string, failed bool) {
	if topic == "" {
		topic = "none"
	}
	m.explanations.WithLabelValues(topic, outcome(!failed)).Inc()
}

func (m *PrometheusMetrics) CertificateIssued(experimentID string) {
	m.certificates.WithLabelValues(experimentID).Inc()
}

func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
