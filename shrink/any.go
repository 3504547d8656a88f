package shrink

import "github.com/lucaskalb/gorapid/stream"

// AnyShrinkable is the type-erased form of Shrinkable, produced by
// gen.AnyGenerator. The property runner and the list-like shrinkers work
// with typed Shrinkables and do not use it.
//
// Every typed operation on Shrinkable has a mirror here; the erased form
// just threads interface{} through unchanged and relies on a caller-
// supplied down-cast to recover T when needed.
type AnyShrinkable struct {
	value  any
	shrink func() stream.Stream[AnyShrinkable]
}

// ToAny erases a typed Shrinkable.
func ToAny[T any](s Shrinkable[T]) AnyShrinkable {
	return AnyShrinkable{
		value: s.value,
		shrink: func() stream.Stream[AnyShrinkable] {
			return stream.Map(s.Shrinks(), func(c Shrinkable[T]) AnyShrinkable { return ToAny(c) })
		},
	}
}

// FromAny recovers a typed Shrinkable from its erased form. down must
// assert the dynamic value to T; it panics (via the standard type-assertion
// panic) if the dynamic type does not match, mirroring a failed downcast.
func FromAny[T any](a AnyShrinkable, down func(any) T) Shrinkable[T] {
	return Shrinkable[T]{
		value: down(a.value),
		shrink: func() stream.Stream[Shrinkable[T]] {
			return stream.Map(a.Shrinks(), func(c AnyShrinkable) Shrinkable[T] { return FromAny(c, down) })
		},
	}
}

// Value returns the dynamically typed payload.
func (a AnyShrinkable) Value() any { return a.value }

// Shrinks forces and returns the erased shrink stream.
func (a AnyShrinkable) Shrinks() stream.Stream[AnyShrinkable] {
	if a.shrink == nil {
		return stream.Empty[AnyShrinkable]()
	}
	return a.shrink()
}

// With replaces the erased shrink stream.
func (a AnyShrinkable) With(shrinkFn func() stream.Stream[AnyShrinkable]) AnyShrinkable {
	return AnyShrinkable{value: a.value, shrink: shrinkFn}
}
