package gen

import (
	"testing"

	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

func TestSize(t *testing.T) {
	size := Size{Min: 10, Max: 20}
	if size.Min != 10 {
		t.Errorf("Size.Min = %d, expected 10", size.Min)
	}
	if size.Max != 20 {
		t.Errorf("Size.Max = %d, expected 20", size.Max)
	}
}

func TestGenFunc(t *testing.T) {
	expected := 42
	g := GenFunc[int]{
		fn: func(r *xrand.Random, sz Size) shrink.Shrinkable[int] {
			return shrink.New(expected)
		},
	}

	r := xrand.NewFromSeed(123)
	value := g.Generate(&r, Size{}).Value()
	if value != expected {
		t.Errorf("GenFunc.Generate() = %d, expected %d", value, expected)
	}
}

func TestFrom(t *testing.T) {
	expected := "test"
	g := From(func(r *xrand.Random, sz Size) shrink.Shrinkable[string] {
		return shrink.New(expected)
	})

	r := xrand.NewFromSeed(123)
	value := g.Generate(&r, Size{}).Value()
	if value != expected {
		t.Errorf("From().Generate() = %q, expected %q", value, expected)
	}
}

func TestToAnyFromAnyRoundTrip(t *testing.T) {
	g := Const(7)
	a := ToAny(g)
	roundTripped := FromAny[int](a)

	r := xrand.NewFromSeed(1)
	if v := roundTripped.Generate(&r, Size{}).Value(); v != 7 {
		t.Fatalf("round-tripped generator produced %d, want 7", v)
	}
}
