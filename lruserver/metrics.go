package lruserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, entries func() float64, capacity int) *metrics {
	m := &metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lrucache_hits_total",
			Help: "Number of GET requests that found the key.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lrucache_misses_total",
			Help: "Number of GET requests for absent keys.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lrucache_evictions_total",
			Help: "Number of entries pushed out by capacity.",
		}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.evictions,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "lrucache_entries",
			Help: "Number of resident entries.",
		}, entries),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "lrucache_capacity",
			Help: "Configured capacity.",
		}, func() float64 { return float64(capacity) }),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
