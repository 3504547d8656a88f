package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Uint64 generates unsigned 64-bit integers with automatic range based on
// Size. If nothing is provided, uses [0, 100].
func Uint64(size Size) Generator[uint64] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[uint64] {
		min, max := autoRangeUnsigned[uint64](size, sz)
		if min > max {
			min, max = max, min
		}
		v := r.Uint64(min, max)
		return shrink.Uint(v, min, max)
	})
}

// Uint64Range generates uint64 uniformly in the range [min, max] (inclusive).
func Uint64Range(min, max uint64) Generator[uint64] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[uint64] {
		v := r.Uint64(min, max)
		return shrink.Uint(v, min, max)
	})
}
