package mymetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shopauth"

type Metrics struct {
	registry  *prometheus.Registry
	handshake *prometheus.CounterVec
	gate      *prometheus.CounterVec
}

// New creates counters on a private registry, so tests can create as many as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		handshake: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handshake_total",
			Help:      "Completed oauth callbacks by outcome.",
		}, []string{"outcome"}),
		gate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Session gate decisions.",
		}, []string{"decision"}),
	}
	m.registry.MustRegister(
		m.handshake,
		m.gate,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// HandshakeOutcome counts a callback outcome: "success" or the error kind.
func (m *Metrics) HandshakeOutcome(outcome string) {
	m.handshake.WithLabelValues(outcome).Inc()
}

// GateDecision counts "exempt", "admitted" or "redirected".
func (m *Metrics) GateDecision(decision string) {
	m.gate.WithLabelValues(decision).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
