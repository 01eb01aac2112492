// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request-level and like-engine metrics.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	likeTransitions *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devlink_http_requests_total",
			Help: "HTTP responses by method and status code",
		}, []string{"method", "status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "devlink_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		likeTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devlink_like_transitions_total",
			Help: "Like-set transitions by action and outcome",
		}, []string{"action", "outcome"}),
	}

	c.registry.MustRegister(
		c.requestsTotal,
		c.requestLatency,
		c.likeTransitions,
	)

	return c
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordLikeTransition records a like/unlike attempt. action is "like" or
// "unlike"; outcome is "ok", "conflict" or "not_found".
func (c *Collector) RecordLikeTransition(action, outcome string) {
	c.likeTransitions.WithLabelValues(action, outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware counts requests and observes latency.
func (c *Collector) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			c.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			c.requestLatency.Observe(time.Since(start).Seconds())
		})
	}
}
