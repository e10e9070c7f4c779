package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
)

// StatsSource is anything that can produce a cache Stats snapshot.
type StatsSource interface {
	Stats() cache.Stats
}

// Collector exposes a cache's Stats as Prometheus metrics. It reads a fresh
// snapshot on every scrape, so nothing polls in the background.
type Collector struct {
	src StatsSource

	hits        *prometheus.Desc
	misses      *prometheus.Desc
	evictions   *prometheus.Desc
	expirations *prometheus.Desc
	items       *prometheus.Desc
	itemsLimit  *prometheus.Desc
	memory      *prometheus.Desc
	memoryLimit *prometheus.Desc
	hitRatio    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for src labelled with cacheName.
func NewCollector(cacheName string, src StatsSource) *Collector {
	labels := prometheus.Labels{"cache": cacheName}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(name, help, nil, labels)
	}
	return &Collector{
		src:         src,
		hits:        desc("cache_hits_total", "Total number of cache hits"),
		misses:      desc("cache_misses_total", "Total number of cache misses"),
		evictions:   desc("cache_evictions_total", "Total number of live entries evicted for capacity"),
		expirations: desc("cache_expirations_total", "Total number of entries removed after their TTL elapsed"),
		items:       desc("cache_items", "Current number of entries"),
		itemsLimit:  desc("cache_items_limit", "Configured maximum number of entries"),
		memory:      desc("cache_memory_bytes", "Accounted memory used by entries"),
		memoryLimit: desc("cache_memory_limit_bytes", "Configured memory ceiling"),
		hitRatio:    desc("cache_hit_ratio", "Hits divided by lookups since start"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.hits, c.misses, c.evictions, c.expirations,
		c.items, c.itemsLimit, c.memory, c.memoryLimit, c.hitRatio,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions))
	ch <- prometheus.MustNewConstMetric(c.expirations, prometheus.CounterValue, float64(s.Expirations))
	ch <- prometheus.MustNewConstMetric(c.items, prometheus.GaugeValue, float64(s.Items))
	ch <- prometheus.MustNewConstMetric(c.itemsLimit, prometheus.GaugeValue, float64(s.MaxItems))
	ch <- prometheus.MustNewConstMetric(c.memory, prometheus.GaugeValue, float64(s.MemoryUsed))
	ch <- prometheus.MustNewConstMetric(c.memoryLimit, prometheus.GaugeValue, float64(s.MaxMemory))
	ch <- prometheus.MustNewConstMetric(c.hitRatio, prometheus.GaugeValue, s.HitRatio())
}
