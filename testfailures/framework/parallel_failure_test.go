//go:build demo
// +build demo

// Package framework contains tests that verify the framework's behavior
// when properties fail intentionally. These tests ensure that the framework
// correctly handles failures, shrinking, and parallel execution paths.
package framework

import (
	"fmt"
	"testing"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/prop"
)

type raceCounter struct{ value int } // no synchronization: intentionally racy SUT

// TestConcurrency_PostCheckFailure demonstrates the concurrent driver's
// failure report: rear actions race on an unsynchronized counter, so
// PostCheck's expected-total comparison fails by construction.
func TestConcurrency_PostCheckFailure(t *testing.T) {
	inc := prop.Action[*raceCounter, struct{}]{
		Name: "increment",
		Run:  func(obj **raceCounter, _ *struct{}) { (*obj).value++ },
	}

	c := prop.Concurrency[*raceCounter, struct{}]{
		InitialGen:     gen.Const(&raceCounter{}),
		ActionGen:      gen.Const(inc),
		MaxConcurrency: 8,
		FrontSize:      gen.Size{Min: 0, Max: 0},
		RearSize:       gen.Size{Min: 20, Max: 20},
		PostCheck: func(obj **raceCounter, _ *struct{}) error {
			want := 8 * 20
			if (*obj).value != want {
				return fmt.Errorf("lost updates under the unsynchronized SUT: got %d, want %d", (*obj).value, want)
			}
			return nil
		},
	}

	c.Run(t, prop.Config{Seed: 12345, NumRuns: 1})
}
