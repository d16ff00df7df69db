package util

import "runtime"

// MaxShards caps automatic and requested shard counts.
const MaxShards = 256

// NextPow2 returns the smallest power of two >= x (1 for x <= 1).
// Results that would overflow are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}

// AutoShardCount is nextPow2(2*GOMAXPROCS) clamped to [1, MaxShards].
func AutoShardCount() int {
	p := max(runtime.GOMAXPROCS(0), 1)
	return min(int(NextPow2(uint64(p*2))), MaxShards)
}

// ShardCount resolves a requested shard count against the entry budget.
//
//   - requested 0 or 1: one shard
//   - requested < 0: AutoShardCount
//   - otherwise: next power of two, clamped to MaxShards
//
// The result never exceeds the largest power of two <= maxEntries, so every
// shard owns at least one slot and shards*(maxEntries/shards) <= maxEntries.
func ShardCount(requested, maxEntries int) int {
	var n int
	switch {
	case requested == 0 || requested == 1:
		return 1
	case requested < 0:
		n = AutoShardCount()
	default:
		n = min(int(NextPow2(uint64(requested))), MaxShards)
	}
	for n > 1 && n > maxEntries {
		n >>= 1
	}
	return n
}

// ShardIndex maps a hash onto [0, shards). shards must be a power of two.
func ShardIndex(hash uint64, shards int) int {
	return int(hash & uint64(shards-1))
}
