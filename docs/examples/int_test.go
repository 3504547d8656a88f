//go:build examples
// +build examples

// Package examples demonstrates how to use the gorapid property-based testing library.
// These examples show various testing patterns and how the shrinking mechanism
// helps find minimal counterexamples when properties fail.
package examples

import (
	"testing"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/prop"
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Test_Slice_SumAlwaysZero demonstrates a property-based test with a custom
// generator that is designed to fail. This test verifies a false property:
// "the sum of a slice is always 0". The custom integer generator wraps
// xrand.Random directly and reuses the canonical shrink.Int shrinker, which
// tries 0 first and then bisects between 0 and each element. This example shows how to build a
// generator with gen.From and how shrinking narrows the failure down to a
// minimal counterexample.
func Test_Slice_SumAlwaysZero(t *testing.T) {
	ints := gen.From(func(r *xrand.Random, _ gen.Size) shrink.Shrinkable[int] {
		v := int(r.Int64(-100, 100))
		return shrink.Int(v, -100, 100)
	})

	prop.ForAll(t, prop.Default(), gen.SliceOf(ints, gen.Size{Min: 0, Max: 16}))(
		func(st *testing.T, xs []int, ctx *prop.PropertyContext) prop.Outcome {
			sum := 0
			for _, x := range xs {
				sum += x
			}
			if sum != 0 {
				st.Errorf("expected sum=0; xs=%v sum=%d", xs, sum)
				return prop.OutcomeFail("non-zero sum", nil)
			}
			return prop.OutcomePass()
		},
	)
}
