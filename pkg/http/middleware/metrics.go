package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	regOnce sync.Once

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
)

func registerHTTPMetrics() {
	regOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "salescast_http_requests_total",
			Help: "Total HTTP requests by route, method and status class",
		}, []string{"route", "method", "status"})

		httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salescast_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"})

		httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "salescast_http_requests_in_flight",
			Help: "Number of requests currently being served",
		})
	})
}

type metricsResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *metricsResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics instruments requests with Prometheus counters and histograms.
func Metrics() func(http.Handler) http.Handler {
	registerHTTPMetrics()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			mw := &metricsResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(mw, r)

			route := routeLabel(r.URL.Path)
			httpRequestsTotal.WithLabelValues(route, r.Method, statusClass(mw.status)).Inc()
			httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

// routeLabel keeps label cardinality bounded by collapsing unknown
// paths to their first segment.
func routeLabel(path string) string {
	switch {
	case path == "/", path == "":
		return "/"
	case path == "/health":
		return "/health"
	case path == "/predict":
		return "/predict"
	case path == "/metrics":
		return "/metrics"
	case strings.HasPrefix(path, "/api/"):
		return path
	}

	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	return "/" + parts[0]
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
