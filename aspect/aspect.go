// Package aspect classifies promotional-card images into the gallery's
// supported aspect ratios.
package aspect

import (
	"errors"
	"fmt"
	"math"
)

// Ratio is one of the supported card formats.
type Ratio int

const (
	Square     Ratio = iota // 1:1
	Portrait34              // 3:4
	Portrait45              // 4:5
)

// ErrUnknownRatio is returned by Parse for anything but "1:1", "3:4" or "4:5".
var ErrUnknownRatio = errors.New("aspect: unknown ratio")

// anchors is also the tie-break order: the first closest anchor wins.
var anchors = [...]Ratio{Square, Portrait34, Portrait45}

// Value returns width/height for r.
func (r Ratio) Value() float64 {
	switch r {
	case Portrait34:
		return 0.75
	case Portrait45:
		return 0.8
	default:
		return 1
	}
}

func (r Ratio) String() string {
	switch r {
	case Square:
		return "1:1"
	case Portrait34:
		return "3:4"
	case Portrait45:
		return "4:5"
	default:
		return fmt.Sprintf("Ratio(%d)", int(r))
	}
}

// Parse is the inverse of String.
func Parse(s string) (Ratio, error) {
	for _, r := range anchors {
		if r.String() == s {
			return r, nil
		}
	}
	return Square, fmt.Errorf("%w: %q", ErrUnknownRatio, s)
}

// Detect returns the supported ratio closest to width/height.
// Non-positive or non-finite dimensions yield Square.
func Detect(width, height float64) Ratio {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Square
	}
	ratio := width / height

	best := anchors[0]
	bestDiff := math.Abs(ratio - best.Value())
	for _, r := range anchors[1:] {
		if d := math.Abs(ratio - r.Value()); d < bestDiff {
			best, bestDiff = r, d
		}
	}
	return best
}
