package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	reviewRunsTotal    *prometheus.CounterVec
	reviewFindings     *prometheus.HistogramVec
	reviewScore        *prometheus.HistogramVec
	reviewMissingDocs  *prometheus.HistogramVec
	knowledgeQueries   *prometheus.CounterVec
	knowledgeHitsTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frv",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frv",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "frv",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	reviewRunsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frv",
			Subsystem: "review",
			Name:      "runs_total",
			Help:      "Total completed review runs by process type.",
		},
		[]string{"service", "process_type"},
	)
	reviewFindings := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frv",
			Subsystem: "review",
			Name:      "findings",
			Help:      "Distribution of findings per review run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		},
		[]string{"service", "process_type"},
	)
	reviewScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frv",
			Subsystem: "review",
			Name:      "compliance_score",
			Help:      "Distribution of compliance scores per review run.",
			Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"service", "process_type"},
	)
	reviewMissingDocs := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frv",
			Subsystem: "review",
			Name:      "missing_documents",
			Help:      "Distribution of missing required documents per review run.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 8},
		},
		[]string{"service", "process_type"},
	)
	knowledgeQueries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frv",
			Subsystem: "knowledge",
			Name:      "queries_total",
			Help:      "Total knowledge-base queries.",
		},
		[]string{"service"},
	)
	knowledgeHitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frv",
			Subsystem: "knowledge",
			Name:      "hits_total",
			Help:      "Total knowledge-base queries with at least one result.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		reviewRunsTotal,
		reviewFindings,
		reviewScore,
		reviewMissingDocs,
		knowledgeQueries,
		knowledgeHitsTotal,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		reviewRunsTotal:    reviewRunsTotal,
		reviewFindings:     reviewFindings,
		reviewScore:        reviewScore,
		reviewMissingDocs:  reviewMissingDocs,
		knowledgeQueries:   knowledgeQueries,
		knowledgeHitsTotal: knowledgeHitsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordReviewRun(service, processType string, findings, missingDocs, score int) {
	m.reviewRunsTotal.WithLabelValues(service, processType).Inc()
	m.reviewFindings.WithLabelValues(service, processType).Observe(float64(findings))
	m.reviewMissingDocs.WithLabelValues(service, processType).Observe(float64(missingDocs))
	m.reviewScore.WithLabelValues(service, processType).Observe(float64(score))
}

func (m *HTTPServerMetrics) RecordKnowledgeQuery(service string, hits int) {
	m.knowledgeQueries.WithLabelValues(service).Inc()
	if hits > 0 {
		m.knowledgeHitsTotal.WithLabelValues(service).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
