// Package metrics holds the Prometheus collectors of the payments service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "toolshare"

var (
	// ProviderRequestDuration observes outbound payment provider calls
	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Latency of payment provider calls.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
	}, []string{"operation", "outcome"})

	// SettlementOutcomes counts settlement operations by result code
	SettlementOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "settlement",
		Name:      "outcomes_total",
		Help:      "Settlement operations by operation and result code.",
	}, []string{"operation", "code"})

	// PayoutRuns counts transactions visited by scheduled payout sweeps
	PayoutRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "payout",
		Name:      "scheduled_total",
		Help:      "Transactions processed by the payout scheduler by result.",
	}, []string{"result"})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "events_total",
		Help:      "Provider webhook deliveries by event type and result.",
	}, []string{"event_type", "result"})

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state per upstream host.",
	}, []string{"name"})

	NotificationsQueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notification",
		Name:      "queued_total",
		Help:      "Notifications handed to the mail queue by result.",
	}, []string{"type", "result"})
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
