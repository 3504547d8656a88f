package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Uint generates unsigned integers with automatic range based on Size.
// If no Size is provided, uses [0, 100].
func Uint(size Size) Generator[uint] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[uint] {
		min, max := autoRangeUnsigned[uint](size, sz)
		if min > max {
			min, max = max, min
		}
		v := r.Uint64(uint64(min), uint64(max))
		return shrink.Uint(uint(v), min, max)
	})
}

// UintRange generates uint uniformly in the range [min, max].
func UintRange(min, max uint) Generator[uint] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[uint] {
		v := r.Uint64(uint64(min), uint64(max))
		return shrink.Uint(uint(v), min, max)
	})
}
