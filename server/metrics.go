package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	turns    *prometheus.CounterVec
	rejected *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intentagent",
			Name:      "turns_total",
			Help:      "Dialogue turns by resulting flag.",
		}, []string{"flag"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intentagent",
			Name:      "requests_rejected_total",
			Help:      "Requests refused before routing, by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "intentagent",
			Name:      "turn_duration_seconds",
			Help:      "Time spent routing one turn.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.turns, m.rejected, m.duration)
	return m
}
