package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/aura/pkg/domain"
)

// Metrics holds the Prometheus collectors of the client and the bank.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Transitions     *prometheus.CounterVec
	Routes          *prometheus.CounterVec
	RouteDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_client_requests_total",
				Help: "Total number of calls made by the network boundary",
			},
			[]string{"op", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aura_client_request_duration_seconds",
				Help:    "Duration of calls made by the network boundary",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_screen_transitions_total",
				Help: "Total number of screen state writes",
			},
			[]string{"screen", "state"},
		),
		Routes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_bank_requests_total",
				Help: "Total number of requests served by the bank",
			},
			[]string{"route", "code"},
		),
		RouteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aura_bank_request_duration_seconds",
				Help:    "Duration of requests served by the bank",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	m.registry.MustRegister(m.Requests, m.RequestDuration, m.Transitions, m.Routes, m.RouteDuration)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks records client requests and screen transitions.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.Screen, e.To.String()).Inc()
		},
		OnRequest: func(_ context.Context, e *domain.RequestEvent) {
			m.Requests.WithLabelValues(e.Op, Outcome(e.Err)).Inc()
			m.RequestDuration.WithLabelValues(e.Op).Observe(e.Duration.Seconds())
		},
	}
}

// Outcome labels an error by its network taxonomy variant.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch e := domain.AsNetworkError(err).(type) {
	case *domain.ServerError:
		return "server_error"
	case *domain.ConnectivityError:
		if e.TimedOut {
			return "timeout"
		}
		return "unreachable"
	default:
		return "unknown"
	}
}

// Middleware instruments chi routes by their pattern, so path parameters do not
// explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = r.Method + " " + pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Routes.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.RouteDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
