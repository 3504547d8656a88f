package shrink

import (
	"math"

	"github.com/lucaskalb/gorapid/stream"
)

// Float64 builds the shrink tree for a float64. NaN shrinks straight to
// 0.0. An infinity is first seeded with the signed maximum finite value and
// shrunk from there. A finite value decomposes as fraction*2^exp (via
// math.Frexp); children are, in order: 0.0, the fraction collapsed to
// +-0.5 at the same exponent, the value truncated towards zero (when that
// is strictly smaller in magnitude), and the exponent shrunk towards zero
// through the integral shrinker (only when doing so cannot increase
// magnitude, i.e. exp>0) with the fraction reattached.
func Float64(value float64) Shrinkable[float64] {
	if math.IsNaN(value) {
		return NewWithShrinks(value, func() stream.Stream[Shrinkable[float64]] {
			return stream.One(New(0.0))
		})
	}
	if math.IsInf(value, 0) {
		seed := math.MaxFloat64
		if value < 0 {
			seed = -math.MaxFloat64
		}
		return NewWithShrinks(value, func() stream.Stream[Shrinkable[float64]] {
			return stream.One(shrinkFiniteFloat(seed))
		})
	}
	return shrinkFiniteFloat(value)
}

func shrinkFiniteFloat(value float64) Shrinkable[float64] {
	if value == 0 {
		return New(0.0)
	}
	frac, exp := math.Frexp(value)
	return NewWithShrinks(value, func() stream.Stream[Shrinkable[float64]] {
		seen := map[float64]bool{value: true}
		parts := make([]float64, 0, 4)

		add := func(v float64) {
			if !seen[v] {
				seen[v] = true
				parts = append(parts, v)
			}
		}

		add(0.0)

		if half := math.Ldexp(math.Copysign(0.5, value), exp); math.Abs(half) < math.Abs(value) {
			add(half)
		}

		if trunc := math.Trunc(value); math.Abs(trunc) < math.Abs(value) {
			add(trunc)
		}

		s := stream.Map(stream.Values(parts), func(v float64) Shrinkable[float64] { return shrinkFiniteFloat(v) })

		if exp > 0 {
			expShrinks := shrinkTowardsZeroSigned(int64(exp)).Shrinks()
			reassembled := stream.Map(expShrinks, func(c Shrinkable[int64]) Shrinkable[float64] {
				return shrinkFiniteFloat(math.Ldexp(frac, int(c.Value())))
			})
			s = s.Concat(reassembled)
		}

		return s
	})
}

// Float32 reuses the float64 tree, converting at the boundary: a float32
// value decomposes and shrinks as its float64 widening, then every node is
// narrowed back to float32.
func Float32(value float32) Shrinkable[float32] {
	return Map(Float64(float64(value)), func(v float64) float32 { return float32(v) })
}
