package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Int64 generates 64-bit integers with automatic range based on Size.
// If no Size is provided, uses [-100, 100].
func Int64(size Size) Generator[int64] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[int64] {
		min, max := autoRange64(size, sz)
		if min > max {
			min, max = max, min
		}
		v := r.Int64(min, max)
		return shrink.Int(v, min, max)
	})
}

// Int64Range generates int64 uniformly in the range [min, max] (inclusive).
func Int64Range(min, max int64) Generator[int64] {
	if min > max {
		min, max = max, min
	}
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[int64] {
		v := r.Int64(min, max)
		return shrink.Int(v, min, max)
	})
}

// autoRange64 decides the final range for Int64(...) by combining the
// local "size" and the "size" coming from the runner. We prefer the
// largest range informed; if nothing is informed, we use [-100, 100].
func autoRange64(local, fromRunner Size) (int64, int64) {
	M := int64(0)
	for _, s := range []Size{local, fromRunner} {
		if abs := int64Abs(s.Min); abs > M {
			M = abs
		}
		if abs := int64Abs(s.Max); abs > M {
			M = abs
		}
	}
	if M == 0 {
		M = 100
	}
	return -M, M
}

// int64Abs returns the absolute value of an int as int64.
func int64Abs(x int) int64 {
	if x < 0 {
		return int64(-x)
	}
	return int64(x)
}
