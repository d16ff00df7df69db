// Package prom exports cache.Metrics signals as Prometheus metrics.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/hubcache/cache"
)

// Adapter implements cache.Metrics. All Prometheus metric types are
// goroutine-safe, so one Adapter may serve several caches only if they
// should be aggregated; give each cache its own const labels otherwise.
type Adapter struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	evicts     *prometheus.CounterVec
	entries    prometheus.Gauge
	loads      prometheus.Histogram
	loadErrors prometheus.Counter
}

// New registers the cache metrics with reg (nil => prometheus.DefaultRegisterer)
// under namespace ns and subsystem sub. constLabels may be nil.
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	opts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: ns, Subsystem: sub, Name: name, Help: help, ConstLabels: constLabels}
	}
	a := &Adapter{
		hits:   prometheus.NewCounter(opts("hits_total", "Cache lookups that found a fresh entry.")),
		misses: prometheus.NewCounter(opts("misses_total", "Cache lookups that found no fresh entry.")),
		evicts: prometheus.NewCounterVec(
			opts("evictions_total", "Entries evicted, by reason (capacity, ttl, policy)."),
			[]string{"reason"},
		),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries",
			Help:        "Resident entries, including stale ones not yet removed.",
			ConstLabels: constLabels,
		}),
		loads: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "load_duration_seconds",
			Help:        "Latency of Loader calls made on cache misses.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		loadErrors: prometheus.NewCounter(opts("load_errors_total", "Loader calls that returned an error.")),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.entries, a.loads, a.loadErrors)
	return a
}

func (a *Adapter) Hit()  { a.hits.Inc() }
func (a *Adapter) Miss() { a.misses.Inc() }

func (a *Adapter) Evict(r cache.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

func (a *Adapter) Size(entries int) { a.entries.Set(float64(entries)) }

func (a *Adapter) Load(d time.Duration, err error) {
	a.loads.Observe(d.Seconds())
	if err != nil {
		a.loadErrors.Inc()
	}
}

var _ cache.Metrics = (*Adapter)(nil)
