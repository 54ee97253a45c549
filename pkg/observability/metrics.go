// Package observability provides Prometheus instrumentation for editing
// sessions: command, undo/redo and rewrite counters plus a proof length
// gauge. Expose them by mounting promhttp on the registry the metrics were
// registered with.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors recorded by editing sessions.
type Metrics struct {
	CommandsApplied *prometheus.CounterVec
	UndosTotal      prometheus.Counter
	RedosTotal      prometheus.Counter
	RewritesApplied *prometheus.CounterVec
	ProofSteps      prometheus.Gauge
}

// NewMetrics creates and registers the session collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CommandsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proofline_commands_applied_total",
				Help: "Total number of edit commands applied",
			},
			[]string{"command"},
		),
		UndosTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proofline_undos_total",
			Help: "Total number of undo operations",
		}),
		RedosTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proofline_redos_total",
			Help: "Total number of redo operations",
		}),
		RewritesApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proofline_rewrites_applied_total",
				Help: "Total number of rewrite rules applied",
			},
			[]string{"rule"},
		),
		ProofSteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "proofline_proof_steps",
			Help: "Current number of steps in the proof",
		}),
	}
	reg.MustRegister(m.CommandsApplied, m.UndosTotal, m.RedosTotal, m.RewritesApplied, m.ProofSteps)
	return m
}

// NewNopMetrics returns collectors bound to a private registry, for use
// when no metrics endpoint is exposed.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
