// Package metrics holds the Prometheus collectors exported by the client.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "relaysdk"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics groups the client's collectors.
type Metrics struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	transfers *prometheus.CounterVec
}

// New creates the collectors and registers them on reg when non-nil. When a
// collector with the same descriptor is already registered on reg, for
// example by another client sharing the registry, that collector is reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relayer",
			Name:      "requests_total",
			Help:      "Relayer HTTP requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "relayer",
			Name:      "request_duration_seconds",
			Help:      "Relayer HTTP round trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Transfer submissions by result.",
		}, []string{"result"}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.durations, err = register(reg, m.durations); err != nil {
		return nil, err
	}
	if m.transfers, err = register(reg, m.transfers); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	var zero C
	return zero, fmt.Errorf("failed to register metrics collector: %w", err)
}

// ObserveRequest records one relayer round trip. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(endpoint string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.durations.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

// IncTransfer counts a transfer by result label ("success", "rejected", "error").
func (m *Metrics) IncTransfer(result string) {
	if m == nil {
		return
	}
	m.transfers.WithLabelValues(result).Inc()
}
