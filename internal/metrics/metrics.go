package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
)

var (
	// Entry removals by reason: evicted, expired, deleted, replaced
	CacheRemovalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_removals_total",
			Help: "Total number of entries removed from the cache",
		},
		[]string{"cache", "reason"},
	)

	CacheRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_rejections_total",
			Help: "Total number of Set calls rejected for capacity",
		},
		[]string{"cache"},
	)

	CacheRejectedEntryBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_rejected_entry_bytes",
			Help:    "Size of entries rejected for capacity",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"cache"},
	)

	// Reaper metrics
	CacheSweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_sweep_duration_seconds",
			Help:    "Duration of expiry sweeps in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"cache"},
	)

	CacheSweepRemovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_sweep_removed_total",
			Help: "Total number of expired entries removed by sweeps",
		},
		[]string{"cache"},
	)

	CacheAccountingRepairsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_accounting_repairs_total",
			Help: "Total number of times cache accounting was recomputed after drift",
		},
		[]string{"cache"},
	)
)

// Observer records cache events into the package metrics under one cache
// label.
type Observer struct {
	name string
}

var _ cache.Observer = (*Observer)(nil)

// NewObserver returns an observer labelling every sample with cacheName.
func NewObserver(cacheName string) *Observer {
	return &Observer{name: cacheName}
}

func (o *Observer) Removed(_ string, reason cache.RemovalReason) {
	CacheRemovalsTotal.WithLabelValues(o.name, reason.String()).Inc()
}

func (o *Observer) Rejected(_ string, size int64) {
	CacheRejectionsTotal.WithLabelValues(o.name).Inc()
	CacheRejectedEntryBytes.WithLabelValues(o.name).Observe(float64(size))
}

func (o *Observer) SweepFinished(removed int, elapsed time.Duration) {
	CacheSweepDuration.WithLabelValues(o.name).Observe(elapsed.Seconds())
	CacheSweepRemovedTotal.WithLabelValues(o.name).Add(float64(removed))
}

func (o *Observer) Inconsistency(error) {
	CacheAccountingRepairsTotal.WithLabelValues(o.name).Inc()
}
