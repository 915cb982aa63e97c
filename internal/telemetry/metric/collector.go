package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dioritemc/diorite-go/pkg/identmap"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// PaletteSource is the read side of a runtime palette.
type PaletteSource interface {
	Len() int
	Totals() (hits, misses int64)
	Stats() identmap.Stats
}

// Collector reads palette and identity map statistics at scrape time.
type Collector struct {
	src PaletteSource

	families    *prometheus.Desc
	variants    *prometheus.Desc
	paletteSize *prometheus.Desc
	hits        *prometheus.Desc
	misses      *prometheus.Desc
	tableLength *prometheus.Desc
	usedBins    *prometheus.Desc
	treeBins    *prometheus.Desc
	maxChain    *prometheus.Desc
	cells       *prometheus.Desc
	resizes     *prometheus.Desc
	treeifies   *prometheus.Desc
}

// NewCollector creates a Collector over src.
func NewCollector(src PaletteSource) *Collector {
	desc := func(sub, name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(Namespace, sub, name), help, nil, nil)
	}
	return &Collector{
		src:         src,
		families:    desc("registry", "families", "Registered material ids"),
		variants:    desc("registry", "variants", "Registered material sub-types"),
		paletteSize: desc("palette", "size", "Materials with an assigned palette index"),
		hits:        desc("palette", "hits_total", "Resolved lookups recorded in the palette"),
		misses:      desc("palette", "misses_total", "Lookups that resolved to no material"),
		tableLength: desc("identmap", "table_length", "Bins in the palette identity map table"),
		usedBins:    desc("identmap", "used_bins", "Non-empty bins"),
		treeBins:    desc("identmap", "tree_bins", "Bins converted to red-black trees"),
		maxChain:    desc("identmap", "max_chain_length", "Longest bin"),
		cells:       desc("identmap", "counter_cells", "Striped counter cells allocated"),
		resizes:     desc("identmap", "resizes_total", "Completed table doublings"),
		treeifies:   desc("identmap", "treeifies_total", "Chains converted to trees"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.families, c.variants, c.paletteSize, c.hits, c.misses,
		c.tableLength, c.usedBins, c.treeBins, c.maxChain, c.cells, c.resizes, c.treeifies,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}
	counter := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, v)
	}

	gauge(c.families, float64(material.Count()))
	gauge(c.variants, float64(material.VariantCount()))

	hits, misses := c.src.Totals()
	gauge(c.paletteSize, float64(c.src.Len()))
	counter(c.hits, float64(hits))
	counter(c.misses, float64(misses))

	s := c.src.Stats()
	gauge(c.tableLength, float64(s.TableLength))
	gauge(c.usedBins, float64(s.UsedBins))
	gauge(c.treeBins, float64(s.TreeBins))
	gauge(c.maxChain, float64(s.MaxChainLength))
	gauge(c.cells, float64(s.CounterCells))
	counter(c.resizes, float64(s.Resizes))
	counter(c.treeifies, float64(s.Treeifies))
}
