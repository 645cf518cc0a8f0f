// Package metrics publishes Prometheus metrics for content client activity.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestOutcome captures how a content API call concluded.
type RequestOutcome string

const (
	// RequestOK indicates a successful response, cached or live.
	RequestOK RequestOutcome = "ok"
	// RequestError indicates a normalized API or transport failure.
	RequestError RequestOutcome = "error"
	// RequestMock indicates the demo dataset substituted for a failure.
	RequestMock RequestOutcome = "mock"
)

// CacheLookupOutcome captures the result of a response cache lookup.
type CacheLookupOutcome string

const (
	CacheLookupHit   CacheLookupOutcome = "hit"
	CacheLookupMiss  CacheLookupOutcome = "miss"
	CacheLookupError CacheLookupOutcome = "error"
)

// Recorder publishes Prometheus metrics for client requests and cache use.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	gatherer prometheus.Gatherer
	handler  http.Handler

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec

	cacheLookups *prometheus.CounterVec
}

// NewRecorder constructs a Prometheus-backed Recorder. When reg is nil a
// dedicated registry is created so multiple sessions can coexist without
// conflicting with the global default registerer.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quillfeed",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Content API operations completed by the client.",
	}, []string{"operation", "outcome", "status_code", "from_cache"})

	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quillfeed",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for completed content API operations.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"operation", "outcome"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quillfeed",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Response cache lookups executed by the client.",
	}, []string{"operation", "result"})

	reg.MustRegister(requests, requestLatency, cacheLookups)

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	return &Recorder{
		gatherer:       reg,
		handler:        handler,
		requests:       requests,
		requestLatency: requestLatency,
		cacheLookups:   cacheLookups,
	}
}

// Handler exposes the Prometheus HTTP handler for the recorder's registry.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "metrics unavailable", http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// Gatherer returns the underlying Prometheus gatherer for tests and advanced
// integrations.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.gatherer
}

// ObserveRequest records the outcome and latency for a completed operation.
func (r *Recorder) ObserveRequest(operation string, outcome RequestOutcome, statusCode int, fromCache bool, duration time.Duration) {
	if r == nil {
		return
	}
	statusLabel := strconv.Itoa(statusCode)
	if statusCode <= 0 {
		statusLabel = "unknown"
	}
	cacheLabel := "false"
	if fromCache {
		cacheLabel = "true"
	}
	opLabel := normalizeLabel(operation)
	r.requests.WithLabelValues(opLabel, string(outcome), statusLabel, cacheLabel).Inc()
	r.requestLatency.WithLabelValues(opLabel, string(outcome)).Observe(duration.Seconds())
}

// ObserveCacheLookup records the result of a response cache lookup.
func (r *Recorder) ObserveCacheLookup(operation string, result CacheLookupOutcome) {
	if r == nil {
		return
	}
	resultLabel := string(result)
	if resultLabel == "" {
		resultLabel = string(CacheLookupMiss)
	}
	r.cacheLookups.WithLabelValues(normalizeLabel(operation), resultLabel).Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
