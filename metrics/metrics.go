// Package metrics exports cache statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ardnew/mfmt/lru"
)

// CacheCollector is a [prometheus.Collector] that reads cache statistics on
// every scrape.
//
// The statistics function is called from the scraping goroutine, so it must
// be safe to call concurrently with the cache's owner.
type CacheCollector struct {
	stats func() lru.Stats

	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	entries   *prometheus.Desc
	capacity  *prometheus.Desc
}

// NewCacheCollector returns a collector exporting the statistics returned by
// stats under namespace. Optional labels are attached to every metric.
func NewCacheCollector(
	namespace string,
	stats func() lru.Stats,
	labels prometheus.Labels,
) *CacheCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", name),
			help, nil, labels,
		)
	}

	return &CacheCollector{
		stats:     stats,
		hits:      desc("hits_total", "Number of cache lookups that found an entry."),
		misses:    desc("misses_total", "Number of cache lookups that found nothing."),
		evictions: desc("evictions_total", "Number of entries evicted to respect capacity."),
		entries:   desc("entries", "Number of entries currently cached."),
		capacity:  desc("capacity", "Maximum number of cached entries."),
	}
}

// Describe implements [prometheus.Collector].
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.entries
	ch <- c.capacity
}

// Collect implements [prometheus.Collector].
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()

	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Size))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
}
