// Package metrics exposes Prometheus instrumentation for the registry server:
// HTTP request counters and latency histograms, plus counters the form-session
// engine and draft store report into.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ktreg_http_requests_total",
		Help: "HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ktreg_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	DraftSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ktreg_draft_saves_total",
		Help: "Draft autosaves by form kind and outcome",
	}, []string{"kind", "outcome"})

	ActiveFormSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ktreg_active_form_sessions",
		Help: "Form wizard sessions currently held in memory",
	})

	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ktreg_form_submissions_total",
		Help: "Completed wizard submissions by form kind",
	}, []string{"kind"})
)

// Middleware records a counter and latency observation per request.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			requestsTotal.WithLabelValues(
				c.Request().Method, path, strconv.Itoa(c.Response().Status)).Inc()
			requestDuration.WithLabelValues(c.Request().Method, path).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the Prometheus text exposition endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
