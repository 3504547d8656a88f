//go:build demo
// +build demo

// Package demo contains demonstration tests that are designed to fail intentionally.
// These tests showcase the shrinking mechanism and property-based testing capabilities
// of the gorapid library. They are meant for educational and demonstration purposes.
package demo

import (
	"testing"

	"github.com/lucaskalb/gorapid/quick"
)

// TestEqual_WithDifferentTypes tests the Equal function with different values
// to demonstrate that it correctly identifies unequal values and fails appropriately.
// These tests are skipped in normal runs as they are expected to fail.
func TestEqual_WithDifferentTypes(t *testing.T) {
	// These tests are expected to fail, so we'll skip them in normal test runs
	// They're here to demonstrate that Equal works correctly
	t.Skip("These tests are expected to fail and are for demonstration purposes")

	t.Run("different integers", func(t *testing.T) {
		// This should fail because 42 != 43
		quick.Equal(t, 42, 43)
	})

	t.Run("different strings", func(t *testing.T) {
		// This should fail because "hello" != "world"
		quick.Equal(t, "hello", "world")
	})

	t.Run("different slices", func(t *testing.T) {
		// This should fail because the slices have different elements
		quick.Equal(t, []int{1, 2, 3}, []int{1, 2, 4})
	})
}

// TestEqual_PointerComparison demonstrates pointer comparison behavior.
// Equal compares what the pointers point to, so two distinct pointers to
// equal values compare equal.
func TestEqual_PointerComparison(t *testing.T) {
	t.Run("equal pointers", func(t *testing.T) {
		// Test pointer comparison: &x and &y differ, their targets do not.
		x := 42
		y := 42
		t.Skip("Demonstration only: Equal follows pointers, so &x and &y compare equal")
		quick.Equal(t, &x, &y)
	})
}