package shrink

import "github.com/lucaskalb/gorapid/stream"

// signedInt is the set of Go signed integer kinds the integral shrinker
// supports.
type signedInt interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// unsignedInt is the set of Go unsigned integer kinds the integral shrinker
// supports.
type unsignedInt interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Int builds the canonical shrink tree for a signed integer bounded to
// [min,max]: children converge on the bound closest to zero (0 itself when
// 0 is in range) by binary search. Every child is strictly closer to the
// target than its parent; the target itself has no shrinks.
func Int[T signedInt](value, min, max T) Shrinkable[T] {
	target := signedTarget(min, max)
	shifted := value - target
	return Map(shrinkTowardsZeroSigned(shifted), func(v T) T { return v + target })
}

// signedTarget returns 0 if it lies in [min,max], otherwise the bound
// closest to 0.
func signedTarget[T signedInt](min, max T) T {
	if min <= 0 && 0 <= max {
		return 0
	}
	if min > 0 {
		return min
	}
	return max
}

func shrinkTowardsZeroSigned[T signedInt](value T) Shrinkable[T] {
	if value == 0 {
		return New[T](0)
	}
	return NewWithShrinks(value, func() stream.Stream[Shrinkable[T]] {
		zero := stream.One(New[T](0))
		if value > 0 {
			return zero.ConcatLazy(func() stream.Stream[Shrinkable[T]] { return genPosSigned[T](0, value) })
		}
		return zero.ConcatLazy(func() stream.Stream[Shrinkable[T]] { return genNegSigned[T](value, 0) })
	})
}

// genPosSigned builds the bisection tree over the open interval (min,max)
// for a positive-converging value, min>=0.
func genPosSigned[T signedInt](min, max T) stream.Stream[Shrinkable[T]] {
	if min+1 >= max {
		return stream.Empty[Shrinkable[T]]()
	}
	mid := min/2 + max/2
	if min%2 != 0 && max%2 != 0 {
		mid++
	}
	if min+2 >= max {
		return stream.One(New(mid))
	}
	left := NewWithShrinks(mid, func() stream.Stream[Shrinkable[T]] { return genPosSigned[T](min, mid) })
	return stream.Cons(left, func() stream.Stream[Shrinkable[T]] { return genPosSigned[T](mid, max) })
}

// genNegSigned is the mirror of genPosSigned for a negative-converging
// value, max<=0.
func genNegSigned[T signedInt](min, max T) stream.Stream[Shrinkable[T]] {
	if min+1 >= max {
		return stream.Empty[Shrinkable[T]]()
	}
	mid := min/2 + max/2
	if min%2 != 0 && max%2 != 0 {
		mid--
	}
	if min+2 >= max {
		return stream.One(New(mid))
	}
	left := NewWithShrinks(mid, func() stream.Stream[Shrinkable[T]] { return genNegSigned[T](mid, max) })
	return stream.Cons(left, func() stream.Stream[Shrinkable[T]] { return genNegSigned[T](min, mid) })
}

// Uint builds the canonical shrink tree for an unsigned integer bounded to
// [min,max]: children converge on min (unsigned values can't go below it)
// by binary search.
func Uint[T unsignedInt](value, min, max T) Shrinkable[T] {
	_ = max
	shifted := value - min
	return Map(shrinkTowardsZeroUnsigned(shifted), func(v T) T { return v + min })
}

func shrinkTowardsZeroUnsigned[T unsignedInt](value T) Shrinkable[T] {
	if value == 0 {
		return New[T](0)
	}
	return NewWithShrinks(value, func() stream.Stream[Shrinkable[T]] {
		zero := stream.One(New[T](0))
		return zero.ConcatLazy(func() stream.Stream[Shrinkable[T]] { return genPosUnsigned[T](0, value) })
	})
}

func genPosUnsigned[T unsignedInt](min, max T) stream.Stream[Shrinkable[T]] {
	if min+1 >= max {
		return stream.Empty[Shrinkable[T]]()
	}
	mid := min/2 + max/2
	if min%2 != 0 && max%2 != 0 {
		mid++
	}
	if min+2 >= max {
		return stream.One(New(mid))
	}
	left := NewWithShrinks(mid, func() stream.Stream[Shrinkable[T]] { return genPosUnsigned[T](min, mid) })
	return stream.Cons(left, func() stream.Stream[Shrinkable[T]] { return genPosUnsigned[T](mid, max) })
}
