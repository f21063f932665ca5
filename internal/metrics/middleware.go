package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// noDomain labels routes that serve no recommendation domain.
const noDomain = "none"

var httpLabels = []string{"method", "route", "domain", "status"}

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by route and recommendation domain",
			// Recommendation requests fan out to a model and catalogs; allow up to the model timeout.
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 12},
		},
		httpLabels,
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and recommendation domain",
		},
		httpLabels,
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
}

// Middleware records request count and duration labeled with the chi route pattern
// and the {domain} URL parameter, so books, movies and travel form separate series.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route, d := routeLabels(r)
			labels := prometheus.Labels{
				"method": r.Method,
				"route":  route,
				"domain": d,
				"status": strconv.Itoa(status),
			}
			httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
			httpRequestsTotal.With(labels).Inc()
		})
	}
}

// routeLabels reads the matched route pattern and domain once routing has run.
func routeLabels(r *http.Request) (route, d string) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return normalizePath(""), noDomain
	}
	d = rctx.URLParam("domain")
	if d == "" {
		d = noDomain
	}
	return normalizePath(rctx.RoutePattern()), d
}

// normalizePath keeps label cardinality bounded: unmatched requests share one series.
func normalizePath(pattern string) string {
	if pattern == "" {
		return "unknown"
	}
	return pattern
}
