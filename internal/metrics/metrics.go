// Package metrics exposes dashboard engine counters in Prometheus format.
// Metrics are written to a text file for the node_exporter textfile
// collector; pulse never serves them over the network.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pulse"

// Metrics holds the engine collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	StreamTicks        prometheus.Counter
	StreamEvictions    prometheus.Counter
	StreamWindowLen    prometheus.Gauge
	StreamLastValue    prometheus.Gauge
	CountdownRemaining prometheus.Gauge
	LogAppends         prometheus.Counter
}

// New registers a fresh set of collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		StreamTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_ticks_total",
			Help:      "Total number of samples produced",
		}),
		StreamEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_evictions_total",
			Help:      "Samples evicted from the full window",
		}),
		StreamWindowLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_window_samples",
			Help:      "Samples currently in the window",
		}),
		StreamLastValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_last_value",
			Help:      "Value of the newest sample",
		}),
		CountdownRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "countdown_remaining_seconds",
			Help:      "Seconds left until the countdown target",
		}),
		LogAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_appends_total",
			Help:      "Entries appended to the event log",
		}),
	}
	m.reg.MustRegister(
		m.StreamTicks,
		m.StreamEvictions,
		m.StreamWindowLen,
		m.StreamLastValue,
		m.CountdownRemaining,
		m.LogAppends,
	)
	return m
}

// ObserveTick records one stream tick.
func (m *Metrics) ObserveTick(value, windowLen int, evicted bool) {
	m.StreamTicks.Inc()
	if evicted {
		m.StreamEvictions.Inc()
	}
	m.StreamWindowLen.Set(float64(windowLen))
	m.StreamLastValue.Set(float64(value))
}

// ObserveCountdown records the remaining seconds.
func (m *Metrics) ObserveCountdown(remaining int64) {
	m.CountdownRemaining.Set(float64(remaining))
}

// ObserveAppend records one event log append.
func (m *Metrics) ObserveAppend() {
	m.LogAppends.Inc()
}

// WriteFile atomically writes the current values in text exposition format.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
