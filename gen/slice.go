package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// SliceOf generates []T from an element generator.
//   - size.Min/Max control the length (default Min=0, Max=16).
//   - A non-zero Size passed to Generate (such as the runner's) replaces size.
//
// Shrinks membership-wise first (the length shrinks towards size.Min,
// dropping elements off the tail), then element-wise once a given length
// can shrink no further (one position at a time is replaced by one of its
// own shrinks, holding the rest fixed).
func SliceOf[T any](elem Generator[T], size Size) Generator[[]T] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[[]T] {
		if size.Min == 0 && size.Max == 0 {
			size.Min, size.Max = 0, 16
		}
		if sz.Min != 0 || sz.Max != 0 {
			size = sz
		}
		if size.Max < size.Min {
			size.Max = size.Min
		}

		n := r.Size(size.Min, size.Max+1)
		elems := make([]shrink.Shrinkable[T], n)
		for i := 0; i < n; i++ {
			elems[i] = elem.Generate(r, Size{})
		}
		return shrink.List(elems, size.Min)
	})
}
