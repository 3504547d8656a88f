package shrink

import "testing"

func TestListShrinksLengthThenElements(t *testing.T) {
	elems := []Shrinkable[int]{Int(10, 0, 100), Int(20, 0, 100), Int(30, 0, 100)}
	s := List(elems, 0)
	if len(s.Value()) != 3 {
		t.Fatalf("root length = %d, want 3", len(s.Value()))
	}
	children := s.Shrinks().ToSlice()
	if len(children) == 0 {
		t.Fatal("expected shrinks")
	}
	shortest := children[0].Value()
	if len(shortest) >= 3 {
		t.Fatalf("first shrink %v is not shorter", shortest)
	}
}

func TestListMinLenStopsShrinking(t *testing.T) {
	elems := []Shrinkable[int]{Int(10, 0, 100)}
	s := List(elems, 1)
	for _, c := range s.Shrinks().ToSlice() {
		if len(c.Value()) < 1 {
			t.Fatalf("shrink %v below minLen 1", c.Value())
		}
	}
}

func TestListElementwiseAtMinLength(t *testing.T) {
	elems := []Shrinkable[int]{Int(50, 0, 100)}
	s := List(elems, 1)
	children := s.Shrinks().ToSlice()
	if len(children) == 0 {
		t.Fatal("expected element-wise shrinks once length is fixed")
	}
	for _, c := range children {
		if len(c.Value()) != 1 {
			t.Fatalf("shrink %v changed length unexpectedly", c.Value())
		}
	}
}

func TestSetOnlyShrinksMembership(t *testing.T) {
	elems := []Shrinkable[int]{Int(1, 0, 100), Int(2, 0, 100), Int(3, 0, 100)}
	s := Set(elems, 0)
	if len(s.Value()) != 3 {
		t.Fatalf("root length = %d, want 3", len(s.Value()))
	}
	for _, c := range s.Shrinks().ToSlice() {
		if len(c.Value()) >= 3 {
			t.Fatalf("shrink %v did not reduce membership", c.Value())
		}
		for i, v := range c.Value() {
			if v != elems[i].Value() {
				t.Fatalf("set element %d was mutated: got %d want %d", i, v, elems[i].Value())
			}
		}
	}
}

func TestPairShrinksEachComponent(t *testing.T) {
	p := Pair(Int(5, 0, 10), Int(7, 0, 10))
	if p.Value().First != 5 || p.Value().Second != 7 {
		t.Fatalf("unexpected root value %+v", p.Value())
	}
	children := p.Shrinks().ToSlice()
	if len(children) == 0 {
		t.Fatal("expected shrinks")
	}
	sawFirstShrunk, sawSecondShrunk := false, false
	for _, c := range children {
		if c.Value().First != 5 {
			sawFirstShrunk = true
		}
		if c.Value().Second != 7 {
			sawSecondShrunk = true
		}
	}
	if !sawFirstShrunk || !sawSecondShrunk {
		t.Fatal("expected shrinks touching both components")
	}
}
