package gen

import (
	"math"

	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Float32 generates float32 values with automatic range based on Size.
// Default: [-100, 100]. Does not include NaN/Inf.
func Float32(size Size) Generator[float32] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[float32] {
		min, max := autoRangeF32(size, sz)
		if min > max {
			min, max = max, min
		}
		v := r.Float32Range(min, max)
		return clampedFloat32Shrink(v, min, max)
	})
}

// Float32Range generates float32 in [min, max]; can optionally produce NaN/±Inf.
func Float32Range(min, max float32, includeNaN, includeInf bool) Generator[float32] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[float32] {
		v := r.Float32Range(min, max)
		if includeNaN && r.Bool(0.02) {
			v = float32(math.NaN())
		} else if includeInf && r.Bool(0.02) {
			if r.Bool(0.5) {
				v = float32(math.Inf(+1))
			} else {
				v = float32(math.Inf(-1))
			}
		}
		if float32IsFinite(v) {
			return clampedFloat32Shrink(v, min, max)
		}
		return shrink.Float32(v)
	})
}

// clampedFloat32Shrink builds the standard decompose-and-bisect shrink tree
// for v, then clamps every node back into [min,max] so shrinking a bounded
// generator's value never escapes its declared range.
func clampedFloat32Shrink(v, min, max float32) shrink.Shrinkable[float32] {
	return shrink.Map(shrink.Float32(v), func(x float32) float32 { return clampF32(x, min, max) })
}

// float32IsFinite checks if a float32 value is finite (not NaN or Inf).
func float32IsFinite(x float32) bool { return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0) }

// clampF32 constrains a float32 value to be within the given bounds.
func clampF32(x, min, max float32) float32 {
	if !float32IsFinite(x) {
		return x
	}
	if float32IsFinite(min) && x < min {
		return min
	}
	if float32IsFinite(max) && x > max {
		return max
	}
	return x
}

// autoRangeF32 decides the final range for Float32(...) by combining the
// local "size" and the "size" coming from the runner. We prefer the
// largest range informed; if nothing is informed, we use [-100, 100].
func autoRangeF32(local, fromRunner Size) (float32, float32) {
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
	return -float32(M), float32(M)
}
