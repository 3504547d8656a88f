package shrink

import "github.com/lucaskalb/gorapid/stream"

// List builds the shrink tree for a slice whose elements already carry
// their own shrink trees: first membership-wise (the length shrinks down to
// minLen via the integral shrinker, dropping elements off the tail), and
// once a given length can shrink no further, element-wise (one element at a
// time is replaced by one of its own shrinks, holding the rest fixed).
func List[T any](elems []Shrinkable[T], minLen int) Shrinkable[[]T] {
	n := len(elems)
	if n < minLen {
		minLen = n
	}
	lenShr := Uint(uint64(n), uint64(minLen), uint64(n))
	sized := Map(lenShr, func(l uint64) []Shrinkable[T] {
		cp := make([]Shrinkable[T], l)
		copy(cp, elems[:l])
		return cp
	})
	withElements := AndThen(sized, func(leaf Shrinkable[[]Shrinkable[T]]) stream.Stream[Shrinkable[[]Shrinkable[T]]] {
		return elementwiseShrinks(leaf.Value())
	})
	return Map(withElements, sliceValue[T])
}

// Set builds the shrink tree for a collection with unique-membership
// semantics: only the length shrinks (dropping members), never an
// individual member's value, since mutating one could collide with another
// already present.
func Set[T any](elems []Shrinkable[T], minLen int) Shrinkable[[]T] {
	n := len(elems)
	if n < minLen {
		minLen = n
	}
	lenShr := Uint(uint64(n), uint64(minLen), uint64(n))
	sized := Map(lenShr, func(l uint64) []T {
		cp := make([]T, l)
		for i := 0; i < int(l); i++ {
			cp[i] = elems[i].Value()
		}
		return cp
	})
	return sized
}

// Pair builds the shrink tree for a 2-tuple: the first component shrinks
// with the second held fixed, followed by the second shrinking with the
// (already-shrunk-candidate) first held fixed.
func Pair[A, B any](a Shrinkable[A], b Shrinkable[B]) Shrinkable[PairValue[A, B]] {
	value := PairValue[A, B]{First: a.Value(), Second: b.Value()}
	return NewWithShrinks(value, func() stream.Stream[Shrinkable[PairValue[A, B]]] {
		firstShrinks := stream.Map(a.Shrinks(), func(ca Shrinkable[A]) Shrinkable[PairValue[A, B]] {
			return Pair(ca, b)
		})
		secondShrinks := stream.Map(b.Shrinks(), func(cb Shrinkable[B]) Shrinkable[PairValue[A, B]] {
			return Pair(a, cb)
		})
		return firstShrinks.Concat(secondShrinks)
	})
}

// PairValue is the concrete 2-tuple payload produced by Pair.
type PairValue[A, B any] struct {
	First  A
	Second B
}

func sliceValue[T any](elems []Shrinkable[T]) []T {
	out := make([]T, len(elems))
	for i, e := range elems {
		out[i] = e.Value()
	}
	return out
}

// elementwiseShrinks lazily walks every position, substituting each of that
// position's own shrink candidates in turn while holding the rest fixed.
func elementwiseShrinks[T any](elems []Shrinkable[T]) stream.Stream[Shrinkable[[]Shrinkable[T]]] {
	return positionShrinks(elems, 0)
}

func positionShrinks[T any](elems []Shrinkable[T], i int) stream.Stream[Shrinkable[[]Shrinkable[T]]] {
	if i >= len(elems) {
		return stream.Empty[Shrinkable[[]Shrinkable[T]]]()
	}
	thisPos := stream.Map(elems[i].Shrinks(), func(c Shrinkable[T]) Shrinkable[[]Shrinkable[T]] {
		next := make([]Shrinkable[T], len(elems))
		copy(next, elems)
		next[i] = c
		return elementwiseNode(next)
	})
	return thisPos.ConcatLazy(func() stream.Stream[Shrinkable[[]Shrinkable[T]]] { return positionShrinks(elems, i+1) })
}

func elementwiseNode[T any](elems []Shrinkable[T]) Shrinkable[[]Shrinkable[T]] {
	return NewWithShrinks(elems, func() stream.Stream[Shrinkable[[]Shrinkable[T]]] {
		return elementwiseShrinks(elems)
	})
}
