package cache

import "time"

// NoopMetrics discards all signals.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                      {}
func (NoopMetrics) Miss()                     {}
func (NoopMetrics) Evict(EvictReason)         {}
func (NoopMetrics) Size(int)                  {}
func (NoopMetrics) Load(time.Duration, error) {}

var _ Metrics = NoopMetrics{}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

// HitRate returns Hits/(Hits+Misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
