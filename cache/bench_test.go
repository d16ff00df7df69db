package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/IvanBrykalov/hubcache/policy/lru"
)

// benchmarkMix runs a read/write mix over a warm cache with parallel workers.
func benchmarkMix(b *testing.B, opt Options[string, string], readsPct int) {
	c := New[string, string](opt)
	b.Cleanup(func() { _ = c.Close() })

	for i := 0; i < opt.MaxSize/2; i++ {
		c.Set("k:"+strconv.Itoa(i), "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				c.Set(k, "v")
			}
			i++
		}
	})
}

func BenchmarkCache_FIFO_90r10w(b *testing.B) {
	benchmarkMix(b, Options[string, string]{MaxSize: 100_000}, 90)
}

func BenchmarkCache_FIFO_Sharded_90r10w(b *testing.B) {
	benchmarkMix(b, Options[string, string]{MaxSize: 100_000, Shards: -1}, 90)
}

func BenchmarkCache_LRU_Sharded_50r50w(b *testing.B) {
	benchmarkMix(b, Options[string, string]{MaxSize: 100_000, Shards: -1, Policy: lru.New[string, string]()}, 50)
}
