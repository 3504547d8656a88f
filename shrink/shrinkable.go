// Package shrink provides Shrinkable, a value paired with a lazy tree of
// strictly simpler alternatives, and the canonical shrinkers for the base
// domains (integers, floats, strings, containers) used to build it.
//
// A Shrinkable never mutates in place; every combinator (Map, FlatMap,
// Filter, Concat, AndThen, Take, With) returns a new tree built lazily on
// top of the source. Copies of a Shrinkable share the underlying closures
// by reference, so forcing a node is cheap but not guaranteed to be
// memoized: a thunk may run more than once across copies, and must stay a
// pure function of its captures.
package shrink

import (
	"errors"

	"github.com/lucaskalb/gorapid/stream"
)

// ErrInvalidArgument is returned by Filter when the head value itself does
// not satisfy the predicate: there is nothing left to shrink towards.
var ErrInvalidArgument = errors.New("shrink: criteria rejects the value being shrunk")

// Shrinkable pairs a value with a lazily computed stream of simpler
// candidates. The head value is always fully constructed before any shrink
// node is forced.
type Shrinkable[T any] struct {
	value  T
	shrink func() stream.Stream[Shrinkable[T]]
}

// New wraps a value with no shrinks.
func New[T any](v T) Shrinkable[T] {
	return Shrinkable[T]{value: v, shrink: empty[T]}
}

func empty[T any]() stream.Stream[Shrinkable[T]] { return stream.Empty[Shrinkable[T]]() }

// NewWithShrinks wraps a value together with a thunk producing its shrink
// stream. The thunk is not evaluated until Shrinks is called.
func NewWithShrinks[T any](v T, shrinkFn func() stream.Stream[Shrinkable[T]]) Shrinkable[T] {
	return Shrinkable[T]{value: v, shrink: shrinkFn}
}

// Value returns the payload.
func (s Shrinkable[T]) Value() T { return s.value }

// Shrinks forces and returns the stream of simpler candidates.
func (s Shrinkable[T]) Shrinks() stream.Stream[Shrinkable[T]] {
	if s.shrink == nil {
		return stream.Empty[Shrinkable[T]]()
	}
	return s.shrink()
}

// With replaces the shrink stream, keeping the same value.
func (s Shrinkable[T]) With(shrinkFn func() stream.Stream[Shrinkable[T]]) Shrinkable[T] {
	return Shrinkable[T]{value: s.value, shrink: shrinkFn}
}

// WithStream replaces the shrink stream with a concrete (already-built)
// stream, convenience over With for the common non-recursive case.
func (s Shrinkable[T]) WithStream(shrinks stream.Stream[Shrinkable[T]]) Shrinkable[T] {
	return s.With(func() stream.Stream[Shrinkable[T]] { return shrinks })
}

// Map transforms the value with f, threading the transformation through
// every shrink node so the resulting tree has the same shape as the source.
func Map[T, U any](s Shrinkable[T], f func(T) U) Shrinkable[U] {
	return Shrinkable[U]{
		value: f(s.value),
		shrink: func() stream.Stream[Shrinkable[U]] {
			return stream.Map(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[U] { return Map(c, f) })
		},
	}
}

// FlatMap draws a new root from f(value) and replaces the root's own
// shrinks with the flat-mapped original shrinks (each producing a full
// U-shrink-tree).
func FlatMap[T, U any](s Shrinkable[T], f func(T) Shrinkable[U]) Shrinkable[U] {
	root := f(s.value)
	return root.With(func() stream.Stream[Shrinkable[U]] {
		return stream.Map(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[U] { return FlatMap(c, f) })
	})
}

// Filter keeps only nodes satisfying pred. The head must already satisfy
// pred, or ErrInvalidArgument is returned. When a shrink candidate fails
// pred, the first tolerance shrinks of that candidate are tried in its
// place, ahead of its remaining siblings. This applies again to each of
// those that also fails, so tolerance limits how many children are taken
// per failing node, not how many levels deep the search goes.
func Filter[T any](s Shrinkable[T], pred func(T) bool, tolerance int) (Shrinkable[T], error) {
	if !pred(s.value) {
		var zero Shrinkable[T]
		return zero, ErrInvalidArgument
	}
	return s.With(func() stream.Stream[Shrinkable[T]] {
		return filterStream(s.Shrinks(), pred, tolerance)
	}), nil
}

func filterStream[T any](s stream.Stream[Shrinkable[T]], pred func(T) bool, tolerance int) stream.Stream[Shrinkable[T]] {
	for !s.IsEmpty() {
		head := s.Head()
		tail := s.Tail()
		if pred(head.Value()) {
			kept := head.With(func() stream.Stream[Shrinkable[T]] {
				return filterStream(head.Shrinks(), pred, tolerance)
			})
			return stream.Cons(kept, func() stream.Stream[Shrinkable[T]] { return filterStream(tail, pred, tolerance) })
		}
		// head fails: try its first tolerance shrinks before
		// moving on, since a descendant may already satisfy pred.
		s = head.Shrinks().Take(tolerance).Concat(tail)
	}
	return stream.Empty[Shrinkable[T]]()
}

// Concat is the horizontal extension: for every shrink s produced by the
// current tree (recursively), then(s) is appended to s's own shrink stream,
// and then(root) is appended to the root's (transformed) stream.
func Concat[T any](s Shrinkable[T], then func(Shrinkable[T]) stream.Stream[Shrinkable[T]]) Shrinkable[T] {
	return s.With(func() stream.Stream[Shrinkable[T]] {
		transformed := stream.Map(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[T] { return Concat(c, then) })
		return transformed.Concat(then(s))
	})
}

// AndThen is the vertical extension: then(leaf) is appended to the shrink
// stream of each leaf (a node whose shrink stream is empty), leaving
// interior nodes untouched apart from recursing into their children.
func AndThen[T any](s Shrinkable[T], then func(Shrinkable[T]) stream.Stream[Shrinkable[T]]) Shrinkable[T] {
	if s.Shrinks().IsEmpty() {
		return s.With(func() stream.Stream[Shrinkable[T]] { return then(s) })
	}
	return s.With(func() stream.Stream[Shrinkable[T]] {
		return stream.Map(s.Shrinks(), func(c Shrinkable[T]) Shrinkable[T] { return AndThen(c, then) })
	})
}

// Take caps the shrink stream, recursively, at n siblings per level.
func Take[T any](s Shrinkable[T], n int) Shrinkable[T] {
	return s.With(func() stream.Stream[Shrinkable[T]] {
		return stream.Map(s.Shrinks().Take(n), func(c Shrinkable[T]) Shrinkable[T] { return Take(c, n) })
	})
}
