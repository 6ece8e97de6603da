// Package metrics exposes lookup cache instrumentation as Prometheus
// collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "codeapi"

// LookupMetrics implements catalog.Observer on top of Prometheus collectors.
// Query strings are user input and are never used as label values.
type LookupMetrics struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	scanKeys prometheus.Histogram
}

// NewLookupMetrics creates the collectors and registers them with reg.
func NewLookupMetrics(reg prometheus.Registerer) (*LookupMetrics, error) {
	m := &LookupMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup_cache",
			Name:      "hits_total",
			Help:      "Number of searches answered from the lookup cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup_cache",
			Name:      "misses_total",
			Help:      "Number of searches whose result had to be computed.",
		}),
		scanKeys: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_scan_keys",
			Help:      "Number of index keys examined by a wildcard search.",
			Buckets:   prometheus.ExponentialBuckets(8, 4, 8),
		}),
	}
	for _, c := range []prometheus.Collector{m.hits, m.misses, m.scanKeys} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CacheHit implements catalog.Observer.
func (m *LookupMetrics) CacheHit(string) { m.hits.Inc() }

// CacheMiss implements catalog.Observer.
func (m *LookupMetrics) CacheMiss(string) { m.misses.Inc() }

// IndexScanned implements catalog.Observer.
func (m *LookupMetrics) IndexScanned(_ string, keys int) { m.scanKeys.Observe(float64(keys)) }

// RegisterCatalogGauges registers gauges reporting the size of a built
// catalog and of its lookup cache.
func RegisterCatalogGauges(reg prometheus.Registerer, codes func() int, cachedQueries func() int) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "codes",
			Help:      "Number of distinct status codes in the catalog index.",
		}, func() float64 { return float64(codes()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "lookup_cache",
			Name:      "entries",
			Help:      "Number of memoized search queries.",
		}, func() float64 { return float64(cachedQueries()) }),
	}
	for _, g := range gauges {
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}
