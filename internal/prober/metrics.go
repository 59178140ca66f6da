package prober

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Probes  *prometheus.CounterVec
	Latency *prometheus.HistogramVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retailer_probes_total",
				Help: "Outbound availability probes by retailer and outcome",
			},
			[]string{"retailer", "status"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "retailer_probe_duration_seconds",
				Help: "Outbound probe latency by retailer",
			},
			[]string{"retailer"},
		),
	}

	reg.MustRegister(m.Probes, m.Latency)
	return m
}

func (m *Metrics) observe(retailer string, status Status, d time.Duration) {
	if m == nil {
		return
	}
	m.Probes.WithLabelValues(retailer, string(status)).Inc()
	m.Latency.WithLabelValues(retailer).Observe(d.Seconds())
}
