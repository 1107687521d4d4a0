package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	requestsTotal   = "http_requests_total"
	requestDuration = "http_request_duration_seconds"
)

// Middleware counts API requests and their latency by status, method and
// route pattern.
type Middleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMiddleware creates the collectors. Call MustRegister or Collectors before
// serving /metrics.
func NewMiddleware() *Middleware {
	return &Middleware{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      requestsTotal,
			Help:      "number of HTTP requests partitioned by status code, method and route",
		}, []string{"code", "method", "path"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      requestDuration,
			Help:      "time spent serving HTTP requests partitioned by status code, method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method", "path"}),
	}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			code := strconv.Itoa(ww.Status())
			path := rctx.RoutePattern()
			m.requests.WithLabelValues(code, r.Method, path).Inc()
			m.latency.WithLabelValues(code, r.Method, path).Observe(time.Since(start).Seconds())
		}
	}
	return http.HandlerFunc(fn)
}

// Collectors returns the collectors for a custom registry
func (m *Middleware) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requests, m.latency}
}

// MustRegister registers the collectors with the default registerer
func (m *Middleware) MustRegister() {
	prometheus.MustRegister(m.requests, m.latency)
}
