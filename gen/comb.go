// File: gen/comb.go
package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/stream"
	"github.com/lucaskalb/gorapid/xrand"
)

// -------------------------
// Basic helpers
// -------------------------

// Const always returns the same value, with no shrinks.
func Const[T any](v T) Generator[T] {
	return From(func(_ *xrand.Random, _ Size) shrink.Shrinkable[T] { return shrink.New(v) })
}

// Just is an alias for Const.
func Just[T any](v T) Generator[T] { return Const(v) }

// Lazy defers construction of the underlying generator until Generate is
// called, which is what makes self-referential generators (a tree that
// contains itself) constructible without a chicken-and-egg initialization
// order.
func Lazy[T any](f func() Generator[T]) Generator[T] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[T] {
		return f().Generate(r, sz)
	})
}

// NoShrink disables shrinking for the wrapped generator: the value is kept,
// but its shrink tree is discarded.
func NoShrink[T any](g Generator[T]) Generator[T] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[T] {
		return shrink.New(g.Generate(r, sz).Value())
	})
}

// WeightedGen pairs a generator with a relative weight. A Weight of 0 means
// "share whatever probability mass is left over evenly with the other
// zero-weight entries" rather than literally zero chance.
type WeightedGen[T any] struct {
	Gen    Generator[T]
	Weight float64
}

// OneOf picks uniformly among the given generators.
func OneOf[T any](gs ...Generator[T]) Generator[T] {
	ws := make([]WeightedGen[T], len(gs))
	for i, g := range gs {
		ws[i] = WeightedGen[T]{Gen: g}
	}
	return Weighted(ws...)
}

// Weighted picks a generator according to relative weights. Entries with
// Weight<=0 split whatever probability mass the explicitly weighted
// entries didn't claim.
func Weighted[T any](ws ...WeightedGen[T]) Generator[T] {
	if len(ws) == 0 {
		panic("gen.Weighted: needs at least one generator")
	}
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[T] {
		idx := pickWeightedIndex(r, ws)
		return ws[idx].Gen.Generate(r, sz)
	})
}

func pickWeightedIndex[T any](r *xrand.Random, ws []WeightedGen[T]) int {
	eff := effectiveWeights(ws)
	total := 0.0
	for _, w := range eff {
		total += w
	}
	if total <= 0 {
		return r.Size(0, len(ws))
	}
	roll := r.Float64Range(0, total)
	acc := 0.0
	for i, w := range eff {
		acc += w
		if roll < acc {
			return i
		}
	}
	return len(ws) - 1
}

func effectiveWeights[T any](ws []WeightedGen[T]) []float64 {
	sumExplicit := 0.0
	zeroCount := 0
	for _, w := range ws {
		if w.Weight > 0 {
			sumExplicit += w.Weight
		} else {
			zeroCount++
		}
	}
	eff := make([]float64, len(ws))
	var share float64
	if zeroCount > 0 {
		if sumExplicit == 0 {
			share = 1.0 / float64(zeroCount)
		} else {
			remaining := 1.0 - sumExplicit
			if remaining < 0 {
				remaining = 0
			}
			share = remaining / float64(zeroCount)
		}
	}
	for i, w := range ws {
		if w.Weight > 0 {
			eff[i] = w.Weight
		} else {
			eff[i] = share
		}
	}
	return eff
}

// ElementOf picks uniformly among a fixed list of plain values, shrinking
// towards the first one.
func ElementOf[T any](vs ...T) Generator[T] {
	if len(vs) == 0 {
		panic("gen.ElementOf: needs at least one value")
	}
	return From(func(r *xrand.Random, _ Size) shrink.Shrinkable[T] {
		idx := r.Size(0, len(vs))
		idxShr := shrink.Uint(uint(idx), 0, uint(len(vs)-1))
		return shrink.Map(idxShr, func(i uint) T { return vs[i] })
	})
}

// Interval is sugar for IntRange, named to match the combinator's usual
// role of drawing a bounded numeric interval.
func Interval(min, max int) Generator[int] { return IntRange(min, max) }

// -------------------------
// Combinators
// -------------------------

// Map applies f: A -> B, carrying the shrink tree through unchanged in
// shape (every candidate of A maps to a candidate of B).
func Map[A, B any](ga Generator[A], f func(A) B) Generator[B] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[B] {
		return shrink.Map(ga.Generate(r, sz), f)
	})
}

// Filter keeps only values satisfying pred, retrying generation up to
// maxTries times (default 1000) before giving up. Once a satisfying root
// is found, its shrink tree is pruned by the same predicate so every
// candidate offered during shrinking is guaranteed to satisfy pred too.
func Filter[T any](g Generator[T], pred func(T) bool, maxTries int) Generator[T] {
	if maxTries <= 0 {
		maxTries = 1000
	}
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[T] {
		for tries := 0; tries < maxTries; tries++ {
			s := g.Generate(r, sz)
			if pred(s.Value()) {
				if filtered, err := shrink.Filter(s, pred, 10); err == nil {
					return filtered
				}
			}
		}
		panic("gen.Filter: exceeded maxTries without satisfying the predicate")
	})
}

// SuchThat is an alias for Filter, matching the name some call sites
// prefer for readability at the use site.
func SuchThat[T any](g Generator[T], pred func(T) bool, maxTries int) Generator[T] {
	return Filter(g, pred, maxTries)
}

// FlatMap draws a from ga, then builds gb = f(a) and draws from it. Shrinks
// first try to simplify a, re-deriving b from each simpler a, then fall
// back to b's own shrinks while holding a fixed.
func FlatMap[A, B any](ga Generator[A], f func(A) Generator[B]) Generator[B] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[B] {
		var build func(sa shrink.Shrinkable[A]) shrink.Shrinkable[B]
		build = func(sa shrink.Shrinkable[A]) shrink.Shrinkable[B] {
			sb := f(sa.Value()).Generate(r, sz)
			return sb.With(func() stream.Stream[shrink.Shrinkable[B]] {
				return stream.Map(sa.Shrinks(), build).ConcatLazy(sb.Shrinks)
			})
		}
		return build(ga.Generate(r, sz))
	})
}

// Derive, Bind, Chain and Dependency are all names for FlatMap used at
// different call sites depending on whether the dependency reads as a
// derivation, a monadic bind, a chained step, or a data dependency.
func Derive[A, B any](ga Generator[A], f func(A) Generator[B]) Generator[B] { return FlatMap(ga, f) }
func Bind[A, B any](ga Generator[A], f func(A) Generator[B]) Generator[B]  { return FlatMap(ga, f) }
func Chain[A, B any](ga Generator[A], f func(A) Generator[B]) Generator[B] { return FlatMap(ga, f) }
func Dependency[A, B any](ga Generator[A], f func(A) Generator[B]) Generator[B] {
	return FlatMap(ga, f)
}

// Accumulate builds a chain v1=initial, v2=next(v1), ..., vn=next(v_{n-1})
// of length uniformly drawn in [minSize,maxSize]. The length shrinks down
// to minSize; once fixed, only the LAST element's own shrinks are exposed,
// preserving the dependency chain's integrity (reshrinking an interior
// element would invalidate every element derived from it).
func Accumulate[T any](initial Generator[T], next func(T) Generator[T], minSize, maxSize int) Generator[[]T] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[[]T] {
		n := r.Size(minSize, maxSize+1)
		elems := make([]shrink.Shrinkable[T], n)
		if n > 0 {
			elems[0] = initial.Generate(r, sz)
			for i := 1; i < n; i++ {
				elems[i] = next(elems[i-1].Value()).Generate(r, sz)
			}
		}
		return accumulateShrink(elems, minSize)
	})
}

func accumulateShrink[T any](elems []shrink.Shrinkable[T], minLen int) shrink.Shrinkable[[]T] {
	n := len(elems)
	if n < minLen {
		minLen = n
	}
	lenShr := shrink.Uint(uint64(n), uint64(minLen), uint64(n))
	sized := shrink.Map(lenShr, func(l uint64) []shrink.Shrinkable[T] {
		cp := make([]shrink.Shrinkable[T], l)
		copy(cp, elems[:l])
		return cp
	})
	withTail := shrink.AndThen(sized, func(leaf shrink.Shrinkable[[]shrink.Shrinkable[T]]) stream.Stream[shrink.Shrinkable[[]shrink.Shrinkable[T]]] {
		return tailOnlyShrinks(leaf.Value())
	})
	return shrink.Map(withTail, sliceValueGen[T])
}

func tailOnlyShrinks[T any](v []shrink.Shrinkable[T]) stream.Stream[shrink.Shrinkable[[]shrink.Shrinkable[T]]] {
	if len(v) == 0 {
		return stream.Empty[shrink.Shrinkable[[]shrink.Shrinkable[T]]]()
	}
	last := v[len(v)-1]
	return stream.Map(last.Shrinks(), func(c shrink.Shrinkable[T]) shrink.Shrinkable[[]shrink.Shrinkable[T]] {
		next := make([]shrink.Shrinkable[T], len(v))
		copy(next, v)
		next[len(v)-1] = c
		return shrink.NewWithShrinks(next, func() stream.Stream[shrink.Shrinkable[[]shrink.Shrinkable[T]]] {
			return tailOnlyShrinks(next)
		})
	})
}

func sliceValueGen[T any](elems []shrink.Shrinkable[T]) []T {
	out := make([]T, len(elems))
	for i, e := range elems {
		out[i] = e.Value()
	}
	return out
}

// Aggregate is Accumulate's counterpart that, unlike Accumulate, treats the
// whole chain as reshapeable: every element (not only the last) takes part
// in shrinking, the same way SliceOf reshapes an ordinary slice.
func Aggregate[T any](initial Generator[T], next func(T) Generator[T], minSize, maxSize int) Generator[[]T] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[[]T] {
		n := r.Size(minSize, maxSize+1)
		elems := make([]shrink.Shrinkable[T], n)
		if n > 0 {
			elems[0] = initial.Generate(r, sz)
			for i := 1; i < n; i++ {
				elems[i] = next(elems[i-1].Value()).Generate(r, sz)
			}
		}
		return shrink.List(elems, minSize)
	})
}

// PairOf generates independent values from two generators, shrinking the
// first component then the second.
func PairOf[A, B any](ga Generator[A], gb Generator[B]) Generator[shrink.PairValue[A, B]] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[shrink.PairValue[A, B]] {
		return shrink.Pair(ga.Generate(r, sz), gb.Generate(r, sz))
	})
}

// Construct2 builds a value of type R from two independently-generated
// components via ctor, threading the shrink tree through both.
func Construct2[A, B, R any](ga Generator[A], gb Generator[B], ctor func(A, B) R) Generator[R] {
	return Map(PairOf(ga, gb), func(p shrink.PairValue[A, B]) R { return ctor(p.First, p.Second) })
}

// Construct3 builds a value of type R from three independently-generated
// components via ctor.
func Construct3[A, B, C, R any](ga Generator[A], gb Generator[B], gc Generator[C], ctor func(A, B, C) R) Generator[R] {
	return Map(
		PairOf(PairOf(ga, gb), gc),
		func(p shrink.PairValue[shrink.PairValue[A, B], C]) R {
			return ctor(p.First.First, p.First.Second, p.Second)
		},
	)
}

// Construct4 builds a value of type R from four independently-generated
// components via ctor.
func Construct4[A, B, C, D, R any](ga Generator[A], gb Generator[B], gc Generator[C], gd Generator[D], ctor func(A, B, C, D) R) Generator[R] {
	return Map(
		PairOf(PairOf(ga, gb), PairOf(gc, gd)),
		func(p shrink.PairValue[shrink.PairValue[A, B], shrink.PairValue[C, D]]) R {
			return ctor(p.First.First, p.First.Second, p.Second.First, p.Second.Second)
		},
	)
}

// Ref is a forward-declaration cell used to build recursive generators
// (e.g. a tree generator that contains itself as a child generator): build
// the Ref first, wire it into the recursive structure via Ref.Generator,
// then Set the real generator once it's fully assembled.
type Ref[T any] struct {
	gen Generator[T]
}

// NewRef creates an empty reference cell.
func NewRef[T any]() *Ref[T] { return &Ref[T]{} }

// Set wires the real generator into the cell. Must be called before any
// value is drawn through Generator().
func (ref *Ref[T]) Set(g Generator[T]) { ref.gen = g }

// Generator returns a Generator that indirects through the cell, resolved
// at Generate time rather than at construction time.
func (ref *Ref[T]) Generator() Generator[T] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[T] {
		if ref.gen == nil {
			panic("gen.Ref: dereferenced before Set")
		}
		return ref.gen.Generate(r, sz)
	})
}
