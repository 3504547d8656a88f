package gen

import (
	"math"

	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Float64 generates floats with automatic range based on Size.
//   - If no Size is provided, uses range [-100, 100].
//   - Does not include NaN/Inf (focused on business numeric cases).
func Float64(size Size) Generator[float64] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[float64] {
		min, max := autoRangeF64(size, sz)
		if min > max {
			min, max = max, min
		}
		v := r.Float64Range(min, max)
		return clampedFloat64Shrink(v, min, max)
	})
}

// autoRangeF64 decides the final range for Float64(...) by combining the
// local "size" and the "size" coming from the runner. We prefer the
// largest range informed; if nothing is informed, we use [-100, 100].
func autoRangeF64(local, fromRunner Size) (float64, float64) {
	M := 0
	for _, s := range []Size{local, fromRunner} {
		if a := absInt(s.Min); a > M {
			M = a
		}
		if a := absInt(s.Max); a > M {
			M = a
		}
	}
	if M == 0 {
		M = 100
	}
	return -float64(M), float64(M)
}

// Float64Range generates floats uniformly in [min, max] (inclusive on
// finite bounds). Parameters includeNaN/includeInf allow injecting special
// cases.
func Float64Range(min, max float64, includeNaN, includeInf bool) Generator[float64] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[float64] {
		v := r.Float64Range(min, max)
		if includeNaN && r.Bool(0.02) {
			v = math.NaN()
		} else if includeInf && r.Bool(0.02) {
			if r.Bool(0.5) {
				v = math.Inf(+1)
			} else {
				v = math.Inf(-1)
			}
		}
		if isFinite(v) {
			return clampedFloat64Shrink(v, min, max)
		}
		return shrink.Float64(v)
	})
}

// clampedFloat64Shrink builds the standard decompose-and-bisect shrink tree
// for v, then clamps every node back into [min,max] so shrinking a bounded
// generator's value never escapes its declared range.
func clampedFloat64Shrink(v, min, max float64) shrink.Shrinkable[float64] {
	return shrink.Map(shrink.Float64(v), func(x float64) float64 { return clampF64(x, min, max) })
}

// isFinite checks if a float64 value is finite (not NaN or Inf).
func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// clampF64 constrains a float64 value to be within the given bounds.
func clampF64(x, min, max float64) float64 {
	if !isFinite(x) {
		return x
	}
	if isFinite(min) && x < min {
		return min
	}
	if isFinite(max) && x > max {
		return max
	}
	return x
}
