package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventapi_http_requests_total",
		Help: "Total HTTP requests handled, by method, route and status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventapi_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventapi_registrations_total",
		Help: "Attendee registration attempts, by outcome",
	}, []string{"outcome"})
)

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CountRegistration records a registration attempt outcome
// ("ok", "capacity_exceeded", "duplicate", "event_in_past", "error").
func CountRegistration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}
