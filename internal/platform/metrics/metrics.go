// Package metrics exposes Prometheus instrumentation for the HTTP layer.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus collectors.
type Registry struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	remindersSent   prometheus.Counter
	remindersFailed prometheus.Counter
}

// NewRegistry creates a Registry with all collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mamacare",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mamacare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mamacare",
			Name:      "reminders_sent_total",
			Help:      "Reminder notifications delivered successfully.",
		}),
		remindersFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mamacare",
			Name:      "reminders_failed_total",
			Help:      "Reminder notifications that failed to deliver.",
		}),
	}

	reg.MustRegister(
		r.requestsTotal,
		r.requestDuration,
		r.remindersSent,
		r.remindersFailed,
	)

	return r
}

// Middleware records request counts and latencies. The route template
// (e.g. /api/v1/children/:id) is used as the path label to keep
// cardinality bounded.
func (r *Registry) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			r.requestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			r.requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler returns the /metrics scrape handler.
func (r *Registry) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// ReminderSent increments the delivered reminder counter.
func (r *Registry) ReminderSent() { r.remindersSent.Inc() }

// ReminderFailed increments the failed reminder counter.
func (r *Registry) ReminderFailed() { r.remindersFailed.Inc() }
