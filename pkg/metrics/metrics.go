// Package metrics provides Prometheus instrumentation.
//
// Besides the standard HTTP series it tracks per-operation GraphQL metrics,
// labelled by the root field name, so dashboards can tell a slow menu
// aggregation from a slow order mutation.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tavola",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tavola",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// OperationDuration tracks GraphQL root-field resolution latency.
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tavola",
			Subsystem: "graphql",
			Name:      "operation_duration_seconds",
			Help:      "Duration of GraphQL root operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// OperationErrors counts failed GraphQL root operations by fault code.
	OperationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tavola",
			Subsystem: "graphql",
			Name:      "operation_errors_total",
			Help:      "Total number of GraphQL operations that returned errors.",
		},
		[]string{"operation", "code"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		RequestTotal,
		OperationDuration,
		OperationErrors,
	)
}

// ObserveOperation records one completed root operation.
func ObserveOperation(operation string, d time.Duration) {
	OperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveOperationError records one failed root operation.
func ObserveOperationError(operation, code string) {
	OperationErrors.WithLabelValues(operation, code).Inc()
}

// statusWriter captures the response status code for labelling.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every HTTP request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			status := strconv.Itoa(sw.status)
			RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		})
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.HandlerFunc {
	return promhttp.Handler().ServeHTTP
}
