package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// ArrayOf generates a slice of exact length n, using the element generator.
// It is "array-like": useful when simulating [N]T. Shrink cannot remove
// elements; it only tries element-wise shrinks at each position.
func ArrayOf[T any](elem Generator[T], n int) Generator[[]T] {
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[[]T] {
		if n < 0 {
			n = 0
		}
		elems := make([]shrink.Shrinkable[T], n)
		for i := 0; i < n; i++ {
			elems[i] = elem.Generate(r, Size{})
		}
		return shrink.List(elems, n)
	})
}
