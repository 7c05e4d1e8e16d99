// Package metrics holds the prometheus collectors of the order desk.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "medshop"

type Metrics struct {
	OrdersCreated        *prometheus.CounterVec
	StatusTransitions    *prometheus.CounterVec
	Escalations          prometheus.Counter
	EscalationSweeps     *prometheus.CounterVec
	SeminarRegistrations *prometheus.CounterVec
	CareEvents           *prometheus.CounterVec
	StoreRetries         prometheus.Counter
	HTTPRequestDurations *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders accepted by intake, by whether a distributor was assigned.",
		}, []string{"assigned"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Accepted order status changes by target status and override flag.",
		}, []string{"status", "override"}),
		Escalations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_escalations_total",
			Help:      "Escalation levels raised by sweeps.",
		}),
		EscalationSweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escalation_sweeps_total",
			Help:      "Escalation sweeps by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		SeminarRegistrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seminar_registrations_total",
			Help:      "Seminar registration attempts by outcome.",
		}, []string{"outcome"}),
		CareEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "care_events_received_total",
			Help:      "Customer-care events received from the notification channel.",
		}, []string{"kind"}),
		StoreRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_retries_total",
			Help:      "Retries of requests that failed with a transient store error.",
		}),
		HTTPRequestDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}

	for _, c := range []prometheus.Collector{
		m.OrdersCreated, m.StatusTransitions, m.Escalations, m.EscalationSweeps,
		m.SeminarRegistrations, m.CareEvents, m.StoreRetries, m.HTTPRequestDurations,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewUnregistered returns collectors that are not exported anywhere, for
// tests and tools that do not serve /metrics.
func NewUnregistered() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}
