package ratings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoutai_rating_fetches_total",
		Help: "Total rating service fetches by outcome",
	}, []string{"outcome"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoutai_rating_cache_hits_total",
		Help: "Total rating cache hits (including cached absences)",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoutai_rating_cache_misses_total",
		Help: "Total rating cache misses and expiries",
	})
)
