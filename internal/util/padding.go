package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a common cache line width on amd64/arm64.
const CacheLineSize = 64

// CacheLinePad separates groups of hot fields into distinct cache lines.
type CacheLinePad struct{ _ [CacheLineSize]byte }

// PaddedCounter is an atomic counter occupying exactly one cache line, so
// counters bumped by different shards never share a line.
type PaddedCounter struct {
	atomic.Uint64
	_ [CacheLineSize - 8]byte
}

var _ [CacheLineSize - int(unsafe.Sizeof(PaddedCounter{}))]byte
