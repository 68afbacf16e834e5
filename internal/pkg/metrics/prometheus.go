package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saves",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "saves",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "saves",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Session bootstrap metrics
	sessionAcquiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saves",
			Subsystem: "session",
			Name:      "acquired_total",
			Help:      "Sessions resolved, by the provider that produced them",
		},
		[]string{"source"},
	)

	sessionFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saves",
			Subsystem: "session",
			Name:      "fallback_total",
			Help:      "Session provider failures that triggered a fallback",
		},
		[]string{"provider", "reason"},
	)

	roleAttachedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saves",
			Subsystem: "session",
			Name:      "role_attached_total",
			Help:      "Role ARN persistence outcomes by sink",
		},
		[]string{"sink"},
	)

	// Connection metrics
	connectAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saves",
			Subsystem: "connect",
			Name:      "attempts_total",
			Help:      "Connection attempts by outcome",
		},
		[]string{"outcome"},
	)

	connectDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "saves",
			Subsystem: "connect",
			Name:      "duration_seconds",
			Help:      "Duration of simulated connection verification",
			Buckets:   []float64{.1, .5, 1, 2, 2.5, 5},
		},
	)

	// Demo data metrics
	datasetGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saves",
			Subsystem: "dashboard",
			Name:      "datasets_generated_total",
			Help:      "Number of generated demo datasets",
		},
		[]string{"kind"},
	)

	viewStates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "saves",
			Subsystem: "view",
			Name:      "tracked_sessions",
			Help:      "Number of sessions with in-memory view state",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordSessionAcquired records which provider resolved a session
func RecordSessionAcquired(source string) {
	sessionAcquiredTotal.WithLabelValues(source).Inc()
}

// RecordSessionFallback records a provider failure that moved the chain on
func RecordSessionFallback(provider, reason string) {
	sessionFallbackTotal.WithLabelValues(provider, reason).Inc()
}

// RecordRoleAttached records where a role ARN ended up
func RecordRoleAttached(sink string) {
	roleAttachedTotal.WithLabelValues(sink).Inc()
}

// RecordConnectAttempt records a connection outcome and how long verification took
func RecordConnectAttempt(outcome string, duration time.Duration) {
	connectAttemptsTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		connectDuration.Observe(duration.Seconds())
	}
}

// RecordDatasetGenerated records a generated dashboard dataset
func RecordDatasetGenerated(kind string) {
	datasetGeneratedTotal.WithLabelValues(kind).Inc()
}

// SetViewStates sets the number of sessions with tracked view state
func SetViewStates(count int) {
	viewStates.Set(float64(count))
}
