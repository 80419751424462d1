package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the workflow counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg         *prometheus.Registry
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workorder_transitions_total",
				Help: "Accepted work-order state transitions by history action and entry type",
			},
			[]string{"action", "type"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workorder_transition_failures_total",
				Help: "Refused or failed work-order operations by error kind",
			},
			[]string{"operation", "kind"},
		),
	}
	reg.MustRegister(
		m.transitions,
		m.failures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Transition(action, entryType string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, entryType).Inc()
}

func (m *Metrics) Failure(operation, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(operation, kind).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
