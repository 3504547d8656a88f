package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Bool generates boolean values uniformly.
// Shrink: true always shrinks to false (smaller counterexample by convention);
// false has no shrinks.
func Bool() Generator[bool] {
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[bool] {
		v := r.Bool(0.5)
		return shrink.Bool(v)
	})
}
