// Package metrics exposes an arena's memory accounting as Prometheus
// metrics.
//
// Arenas are single-threaded, so the collector never touches an Arena
// directly: it calls a snapshot function supplied by the arena's owner, who
// is responsible for making that call safe (for example by publishing
// snapshots from the owning goroutine).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/arenakit/arena"
)

// Collector implements prometheus.Collector over arena stats snapshots.
type Collector struct {
	stats func() arena.Stats

	blocks       *prometheus.Desc
	reserved     *prometheus.Desc
	used         *prometheus.Desc
	estimateHigh *prometheus.Desc
}

// NewCollector builds a collector for one arena. The name labels every
// metric so multiple arenas can be registered side by side.
func NewCollector(name string, stats func() arena.Stats) *Collector {
	labels := prometheus.Labels{"arena": name}
	return &Collector{
		stats: stats,
		blocks: prometheus.NewDesc(
			"arena_blocks",
			"Number of memory blocks on the arena's chain.",
			nil, labels,
		),
		reserved: prometheus.NewDesc(
			"arena_reserved_bytes",
			"Total bytes the arena has reserved from the operating system.",
			nil, labels,
		),
		used: prometheus.NewDesc(
			"arena_used_bytes",
			"Bytes handed out across all blocks, including alignment padding.",
			nil, labels,
		),
		estimateHigh: prometheus.NewDesc(
			"arena_size_estimate_high_bytes",
			"Highest remembered per-cycle demand estimate.",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.blocks
	ch <- c.reserved
	ch <- c.used
	ch <- c.estimateHigh
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(s.Blocks))
	ch <- prometheus.MustNewConstMetric(c.reserved, prometheus.GaugeValue, float64(s.Reserved))
	ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(s.Used))
	ch <- prometheus.MustNewConstMetric(c.estimateHigh, prometheus.GaugeValue, float64(s.SizeEstimateHigh))
}
