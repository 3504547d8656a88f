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
)

// Test_String_AllEmpty demonstrates a property-based test that is designed to fail.
// This test verifies a false property: "all generated strings are empty".
// This example shows how the shrinking mechanism will find a minimal counterexample
// when the property fails, helping developers understand why their assumptions are incorrect.
func Test_String_AllEmpty(t *testing.T) {
	prop.ForAll(t, prop.Default(), gen.StringAlphaNum(gen.Size{Min: 0, Max: 32}))(
		func(st *testing.T, s string, ctx *prop.PropertyContext) prop.Outcome {
			if s != "" {
				st.Errorf("expected empty string, got %q", s)
				return prop.OutcomeFail("non-empty string generated", nil)
			}
			return prop.OutcomePass()
		},
	)
}
