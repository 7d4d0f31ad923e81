package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paint",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paint",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	artSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paint",
			Subsystem: "art",
			Name:      "submissions_total",
			Help:      "Art submissions by operation and result.",
		},
		[]string{"op", "result"},
	)
	artObjects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paint",
			Subsystem: "art",
			Name:      "objects_stored_total",
			Help:      "Objects committed by operation.",
		},
		[]string{"op"},
	)
	artRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paint",
			Subsystem: "art",
			Name:      "rejections_total",
			Help:      "Rejected submissions by error kind and rule.",
		},
		[]string{"kind", "rule"},
	)
	renderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paint",
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Token document render duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"output"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, artSubmissions, artObjects, artRejections, renderDuration)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// RecordSubmission counts one setArt/appendArt call. objects is only counted
// on success.
func RecordSubmission(op string, objects int, err error) {
	RegisterMetrics()
	if err != nil {
		artSubmissions.WithLabelValues(op, "rejected").Inc()
		return
	}
	artSubmissions.WithLabelValues(op, "ok").Inc()
	artObjects.WithLabelValues(op).Add(float64(objects))
}

func RecordRejection(kind, rule string) {
	RegisterMetrics()
	artRejections.WithLabelValues(kind, rule).Inc()
}

func RecordRender(output string, duration time.Duration) {
	RegisterMetrics()
	renderDuration.WithLabelValues(output).Observe(duration.Seconds())
}
