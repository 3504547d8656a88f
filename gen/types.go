// Package gen provides generators for property-based testing in Go.
// It includes generators for various data types and combinators for
// building custom generators, all producing lazily-shrinkable values.
package gen

import (
	"reflect"

	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Size controls the scale and limits of generators.
// It defines the minimum and maximum bounds for generated values.
type Size struct {
	// Min is the minimum bound for generated values.
	Min int
	// Max is the maximum bound for generated values.
	Max int
}

// DefaultSize is used whenever a caller does not supply an explicit Size.
var DefaultSize = Size{Min: 0, Max: 100}

// Generator is the public contract for all generators. Generate draws a
// value together with its full shrink tree; nothing is generated lazily
// here, only the shrink candidates are.
type Generator[T any] interface {
	Generate(r *xrand.Random, sz Size) shrink.Shrinkable[T]
}

// GenFunc adapts a plain function into a Generator.
type GenFunc[T any] struct {
	fn func(r *xrand.Random, sz Size) shrink.Shrinkable[T]
}

// Generate implements Generator for GenFunc.
func (g GenFunc[T]) Generate(r *xrand.Random, sz Size) shrink.Shrinkable[T] {
	return g.fn(r, sz)
}

// From builds a Generator from a closure. This is the usual escape hatch
// for one-off generators that don't need their own named type.
func From[T any](fn func(*xrand.Random, Size) shrink.Shrinkable[T]) Generator[T] {
	return GenFunc[T]{fn: fn}
}

// AnyGenerator is the type-erased form of Generator, used by the Arbitrary
// registry to store default generators of differing element types behind
// one value. The property runner and the combinators (Weighted included)
// work with typed Generators and do not use it.
type AnyGenerator struct {
	typ reflect.Type
	gen func(r *xrand.Random, sz Size) shrink.AnyShrinkable
}

// Type reports the erased generator's element type.
func (a AnyGenerator) Type() reflect.Type { return a.typ }

// Generate draws an erased shrinkable value.
func (a AnyGenerator) Generate(r *xrand.Random, sz Size) shrink.AnyShrinkable {
	return a.gen(r, sz)
}

// ToAny erases a typed Generator.
func ToAny[T any](g Generator[T]) AnyGenerator {
	var zero T
	return AnyGenerator{
		typ: reflect.TypeOf(zero),
		gen: func(r *xrand.Random, sz Size) shrink.AnyShrinkable {
			return shrink.ToAny(g.Generate(r, sz))
		},
	}
}

// FromAny recovers a typed Generator from its erased form. It panics at
// generation time if the erased generator's element type is not T.
func FromAny[T any](a AnyGenerator) Generator[T] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[T] {
		erased := a.Generate(r, sz)
		return shrink.FromAny(erased, func(v any) T { return v.(T) })
	})
}
