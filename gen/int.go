// File: gen/int.go
package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Int generates integers with automatic range based on Size:
//   - if sz.Max (or |sz.Min|) > 0: range := [-M, M], where M = max(|sz.Min|, |sz.Max|)
//   - otherwise, uses default range [-100, 100].
//
// Example: prop.ForAll(t, cfg, gen.Int(gen.Size{Max: 1000})) ...
func Int(size Size) Generator[int] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[int] {
		min, max := autoRange(size, sz)
		if min > max {
			min, max = max, min
		}
		v := r.Int64(int64(min), int64(max))
		return shrink.Int(int(v), min, max)
	})
}

// IntRange generates integers uniformly in the range [min, max] (inclusive).
// Ignores sz for the range (useful when you want explicit control).
func IntRange(min, max int) Generator[int] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[int] {
		v := r.Int64(int64(min), int64(max))
		return shrink.Int(int(v), min, max)
	})
}

// autoRange decides the final range for Int(...) by combining the local
// "size" and the "size" coming from the runner. We prefer the largest
// range informed; if nothing is informed, we use [-100, 100].
func autoRange(local, fromRunner Size) (int, int) {
	M := 0
	for _, s := range []Size{local, fromRunner} {
		M = maxInt(M, absInt(s.Min))
		M = maxInt(M, absInt(s.Max))
	}
	if M == 0 {
		M = 100
	}
	return -M, M
}

// absInt returns the absolute value of an integer.
func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
