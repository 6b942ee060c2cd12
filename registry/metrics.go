package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultFound    = "found"
	resultNotFound = "not_found"
	resultNoOrigin = "no_origin"
)

type metrics struct {
	lookups    *prometheus.CounterVec
	cacheHits  prometheus.Counter
	codeBlocks prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) *metrics {
	return &metrics{
		lookups: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: "pcmap",
			Subsystem: "registry",
			Name:      "lookups_total",
			Help:      "Total number of address lookups by result.",
		}, []string{"result"}),
		cacheHits: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Namespace: "pcmap",
			Subsystem: "registry",
			Name:      "cache_hits_total",
			Help:      "Total number of lookups answered from the lookup cache.",
		}),
		codeBlocks: promauto.With(r).NewGauge(prometheus.GaugeOpts{
			Namespace: "pcmap",
			Subsystem: "registry",
			Name:      "code_blocks",
			Help:      "Number of registered code blocks.",
		}),
	}
}
