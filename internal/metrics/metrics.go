// Package metrics registers the Prometheus collectors for the API and exposes
// the chi middleware that feeds them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the application's Prometheus collectors.
type Metrics struct {
	registry         *prometheus.Registry
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	RatingsTotal     prometheus.Counter
	ReactionsTotal   *prometheus.CounterVec
}

// New registers all collectors against a private registry. Pool gauges are
// attached when a pool is provided.
func New(pool *pgxpool.Pool) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "movienight_request_duration_seconds",
				Help:    "HTTP request duration in seconds, by route, method, and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "movienight_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),
		RatingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movienight_ratings_total",
			Help: "Total movie ratings accepted.",
		}),
		ReactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movienight_review_reactions_total",
				Help: "Total review reactions applied, by resulting state.",
			},
			[]string{"state"},
		),
	}

	reg.MustRegister(m.RequestDuration, m.RequestsInFlight, m.RatingsTotal, m.ReactionsTotal)

	if pool != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "movienight_db_pool_acquired_conns",
				Help: "Number of acquired database connections.",
			},
			func() float64 { return float64(pool.Stat().AcquiredConns()) },
		))
		reg.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "movienight_db_pool_idle_conns",
				Help: "Number of idle database connections.",
			},
			func() float64 { return float64(pool.Stat().IdleConns()) },
		))
	}

	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request duration and in-flight count. Route labels come
// from the chi route pattern, so path parameters never explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		m.RequestsInFlight.Inc()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
		m.RequestsInFlight.Dec()
	})
}
