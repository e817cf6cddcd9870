// SPDX-License-Identifier: EPL-2.0

// Package metrics counts pipeline operations in a Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements audremix.Observer.
type Metrics struct {
	Registry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	samples    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audremix_operations_total",
			Help: "Pipeline operations by outcome.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "audremix_operation_seconds",
			Help:    "Time spent per pipeline operation.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"op"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audremix_samples_processed_total",
			Help: "Samples produced by successful operations, all channels.",
		}, []string{"op"}),
	}
	m.Registry.MustRegister(m.operations, m.duration, m.samples)
	return m
}

func (m *Metrics) Observe(op string, started time.Time, samples int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	if err == nil {
		m.samples.WithLabelValues(op).Add(float64(samples))
	}
}

// WriteTextfile writes every metric to path in the text exposition format,
// for the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
