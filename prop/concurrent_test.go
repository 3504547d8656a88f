package prop

import (
	"sync/atomic"
	"testing"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

type concurrentCounter struct {
	value atomic.Int64
}

func concurrentActions() gen.Generator[Action[*concurrentCounter, struct{}]] {
	inc := Action[*concurrentCounter, struct{}]{
		Name: "increment",
		Run:  func(obj **concurrentCounter, _ *struct{}) { (*obj).value.Add(1) },
	}
	return gen.Const(inc)
}

func freshCounterGen() gen.Generator[*concurrentCounter] {
	return gen.From(func(r *xrand.Random, sz gen.Size) shrink.Shrinkable[*concurrentCounter] {
		return shrink.New(&concurrentCounter{})
	})
}

// TestConcurrencyRunProducesExactLogEntryCount exercises the testable
// property that the shared log contains exactly |front| + 2*sum(|rear_i|)
// entries: one per front action, and a start/end pair per rear action. The
// check itself lives inside Concurrency.Run and reports via OutcomeFail on
// mismatch, so a clean run here is the assertion.
func TestConcurrencyRunProducesExactLogEntryCount(t *testing.T) {
	c := Concurrency[*concurrentCounter, struct{}]{
		InitialGen:     freshCounterGen(),
		ActionGen:      concurrentActions(),
		MaxConcurrency: 4,
		FrontSize:      gen.Size{Min: 0, Max: 5},
		RearSize:       gen.Size{Min: 0, Max: 5},
	}
	c.Run(t, Config{Seed: 123, NumRuns: 50})
}

func TestConcurrencyRunInvokesPostCheck(t *testing.T) {
	var postChecked atomic.Int64
	c := Concurrency[*concurrentCounter, struct{}]{
		InitialGen:     freshCounterGen(),
		ActionGen:      concurrentActions(),
		MaxConcurrency: 2,
		FrontSize:      gen.Size{Min: 0, Max: 3},
		RearSize:       gen.Size{Min: 0, Max: 3},
		PostCheck: func(obj **concurrentCounter, model *struct{}) error {
			postChecked.Add(1)
			return nil
		},
	}
	c.Run(t, Config{Seed: 5, NumRuns: 10})

	if postChecked.Load() != 10 {
		t.Fatalf("PostCheck invoked %d times, want 10", postChecked.Load())
	}
}

func TestConcurrencyDefaultsApply(t *testing.T) {
	var c Concurrency[*concurrentCounter, struct{}]
	if got := c.maxConcurrency(); got != 2 {
		t.Fatalf("maxConcurrency() = %d, want 2", got)
	}
	if got := c.frontSize(); got.Min != 0 || got.Max != 10 {
		t.Fatalf("frontSize() = %+v, want {0 10}", got)
	}
	if got := c.rearSize(); got.Min != 0 || got.Max != 10 {
		t.Fatalf("rearSize() = %+v, want {0 10}", got)
	}
}
