package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "surfcmp"

// Compare Prometheus metrics.
var (
	CompareRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compare_requests_total",
			Help:      "Total number of compare calls",
		},
		[]string{"mode", "status"},
	)

	CompareDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compare_duration_seconds",
			Help:      "Compare call duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"mode"},
	)

	ComparePairsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compare_pairs_total",
			Help:      "Total number of object pairs evaluated",
		},
		[]string{"category"},
	)

	CompareMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compare_matches_total",
			Help:      "Total number of same/opposite pair outcomes",
		},
		[]string{"category", "classification"},
	)

	CompareCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compare_cache_total",
			Help:      "Compare result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// Register registers all surfcmp collectors with the default registry.
// Safe to call more than once; call it from main (no init()).
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			CompareRequestsTotal,
			CompareDuration,
			ComparePairsTotal,
			CompareMatchesTotal,
			CompareCacheTotal,
		)
	})
}
