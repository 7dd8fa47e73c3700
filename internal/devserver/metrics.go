package devserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the server's collectors on a private registry so several
// servers can coexist in one process.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schoolconsole_devserver_requests_total",
				Help: "Requests served by the development backend.",
			},
			[]string{"resource", "method", "code"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schoolconsole_devserver_request_duration_seconds",
				Help:    "Request latency of the development backend.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource", "method"},
		),
	}
	m.registry.MustRegister(m.requests, m.latency)
	return m
}

// instrument counts requests per resource. It must run inside the
// /{resource} route so the resource parameter is resolved.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resource := chi.URLParam(r, "resource")
		timer := prometheus.NewTimer(m.latency.WithLabelValues(resource, r.Method))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		timer.ObserveDuration()
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(resource, r.Method, strconv.Itoa(status)).Inc()
	})
}
