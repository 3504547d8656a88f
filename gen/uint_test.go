package gen

import (
	"testing"

	"github.com/lucaskalb/gorapid/xrand"
)

func TestUintWithinBounds(t *testing.T) {
	r := xrand.NewFromSeed(1)
	g := Uint(Size{Min: 0, Max: 100})
	for i := 0; i < 300; i++ {
		v := g.Generate(&r, Size{}).Value()
		if v > 100 {
			t.Fatalf("Uint generated %d outside [0,100]", v)
		}
	}
}

func TestUintRangeBounds(t *testing.T) {
	r := xrand.NewFromSeed(2)
	g := UintRange(10, 20)
	for i := 0; i < 300; i++ {
		v := g.Generate(&r, Size{}).Value()
		if v < 10 || v > 20 {
			t.Fatalf("UintRange(10,20) generated %d out of bounds", v)
		}
	}
}

func TestUintShrinksTowardsMin(t *testing.T) {
	r := xrand.NewFromSeed(3)
	g := UintRange(0, 100)
	s := g.Generate(&r, Size{})
	children := s.Shrinks().ToSlice()
	for _, c := range children {
		if c.Value() > s.Value() && s.Value() != 0 {
			t.Fatalf("shrink %d not simpler than parent %d", c.Value(), s.Value())
		}
	}
}
