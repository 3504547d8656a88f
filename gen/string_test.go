package gen

import (
	"testing"

	"github.com/lucaskalb/gorapid/xrand"
)

func TestStringLengthWithinBounds(t *testing.T) {
	r := xrand.NewFromSeed(1)
	g := String(AlphabetLower, Size{Min: 5, Max: 10})
	for i := 0; i < 200; i++ {
		v := g.Generate(&r, Size{}).Value()
		if len(v) < 5 || len(v) > 10 {
			t.Fatalf("String length %d outside [5,10]: %q", len(v), v)
		}
	}
}

func TestStringAlphaCharset(t *testing.T) {
	r := xrand.NewFromSeed(2)
	g := StringAlpha(Size{Min: 3, Max: 8})
	for i := 0; i < 200; i++ {
		v := g.Generate(&r, Size{}).Value()
		for _, c := range v {
			if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
				t.Fatalf("StringAlpha produced non-alpha rune %q in %q", c, v)
			}
		}
	}
}

func TestStringDigitsCharset(t *testing.T) {
	r := xrand.NewFromSeed(3)
	g := StringDigits(Size{Min: 3, Max: 8})
	for i := 0; i < 200; i++ {
		v := g.Generate(&r, Size{}).Value()
		for _, c := range v {
			if c < '0' || c > '9' {
				t.Fatalf("StringDigits produced non-digit rune %q in %q", c, v)
			}
		}
	}
}

func TestStringASCIILengthWithinBounds(t *testing.T) {
	r := xrand.NewFromSeed(4)
	g := StringASCII(Size{Min: 3, Max: 8})
	for i := 0; i < 200; i++ {
		v := g.Generate(&r, Size{}).Value()
		if len(v) < 3 || len(v) > 8 {
			t.Fatalf("StringASCII length %d outside [3,8]: %q", len(v), v)
		}
	}
}

func TestStringShrinksLengthDown(t *testing.T) {
	r := xrand.NewFromSeed(5)
	g := String(AlphabetLower, Size{Min: 0, Max: 10})
	for i := 0; i < 30; i++ {
		s := g.Generate(&r, Size{})
		if len(s.Value()) == 0 {
			continue
		}
		for _, c := range s.Shrinks().ToSlice() {
			if len(c.Value()) > len(s.Value()) {
				t.Fatalf("shrink %q longer than parent %q", c.Value(), s.Value())
			}
		}
	}
}
