// Package metrics exposes Prometheus collectors for the job console.
package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Probe attempt results.
const (
	ProbeOK             = "ok"
	ProbeHTTPError      = "http_error"
	ProbeTransportError = "transport_error"
)

var (
	probeAttemptsTotal          *prometheus.CounterVec
	submissionsTotal            *prometheus.CounterVec
	jobListLoadsTotal           *prometheus.CounterVec
	clientRequestsTotal         *prometheus.CounterVec
	clientRequestDurationSeconds *prometheus.HistogramVec
	httpRequestsTotal           *prometheus.CounterVec
	httpRequestDurationSeconds  *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		probeAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qjobs_probe_attempts_total",
				Help: "Health probe attempts, labeled by candidate path and result.",
			},
			[]string{"path", "result"},
		)

		submissionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qjobs_submissions_total",
				Help: "Job submissions, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		jobListLoadsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qjobs_job_list_loads_total",
				Help: "Job list loads, labeled by result (ok, empty, failed).",
			},
			[]string{"result"},
		)

		clientRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qjobs_client_requests_total",
				Help: "Outbound API requests, labeled by host, method and code.",
			},
			[]string{"host", "method", "code"},
		)

		clientRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qjobs_client_request_duration_seconds",
				Help:    "Histogram of outbound API request latencies, labeled by method and path.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "path"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of console HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of console HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// SanitizeHost extracts a lowercase hostname from a URL for use as a label.
// It returns "unknown" if the URL is invalid.
func SanitizeHost(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveProbeAttempt counts one candidate attempt of the health probe.
func ObserveProbeAttempt(path, result string) {
	Init()
	probeAttemptsTotal.WithLabelValues(path, result).Inc()
}

// ObserveSubmission counts a submission outcome.
func ObserveSubmission(outcome string) {
	Init()
	submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveJobListLoad counts a job list load.
func ObserveJobListLoad(result string) {
	Init()
	jobListLoadsTotal.WithLabelValues(result).Inc()
}

// ObserveClientRequest records an outbound API request. A code of 0 means
// the transport failed before a response arrived.
func ObserveClientRequest(rawURL, method, path string, code int, duration time.Duration) {
	Init()
	clientRequestsTotal.WithLabelValues(SanitizeHost(rawURL), method, strconv.Itoa(code)).Inc()
	clientRequestDurationSeconds.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveHTTPRequest records an inbound console request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
