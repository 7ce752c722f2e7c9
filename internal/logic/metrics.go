package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoutai_predictions_total",
		Help: "Total predictions served by predicted winner",
	}, []string{"winner"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scoutai_prediction_duration_seconds",
		Help:    "End-to-end prediction latency including rating fetches",
		Buckets: prometheus.DefBuckets,
	})
)
