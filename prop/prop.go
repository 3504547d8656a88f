// Package prop drives a property closure with randomized, shrinkable
// arguments drawn from gen.Generator values: it runs a seeded number of
// examples, shrinks any falsifying input to a local minimum, and supports
// stateful and concurrent test modes over a system-under-test.
package prop

import (
	"flag"
	"fmt"
	"testing"
	"time"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/xrand"
)

// Logger is the minimal logging seam the runner writes progress and
// failure messages through. *testing.T satisfies it directly.
type Logger interface {
	Logf(format string, args ...any)
}

// Config holds the configuration for one property run.
type Config struct {
	// Seed is the random seed used for test case generation. If zero, the
	// process-wide cached seed (PROPTEST_SEED or wall clock) is used.
	Seed int64

	// NumRuns is the number of examples to generate and run. Default 1000.
	NumRuns int

	// MaxDurationMS bounds the whole property's wall-clock budget; 0 means
	// unbounded. Checked between runs, never interrupts a running closure.
	MaxDurationMS int64

	// OnStartup runs before each draw of ForAll's run loop; OnCleanup runs
	// after each of those closure invocations regardless of outcome. Neither
	// runs around the closure invocations of the shrink phase.
	OnStartup func()
	OnCleanup func()

	// OnActionStart/OnActionEnd are invoked by the stateful driver around
	// each action execution.
	OnActionStart func(name string)
	OnActionEnd   func(name string)

	// PostCheck is not called by ForAll or by the stateful/concurrent
	// drivers; StatefulProperty and Concurrency call their own PostCheck
	// fields instead.
	PostCheck func() error

	// ShrinkMaxRetries: 0 selects deterministic shrinking; >0 selects the
	// flaky/confirmation loop, retrying each candidate up to this many
	// extra times.
	ShrinkMaxRetries int

	// ShrinkTimeoutMS bounds the whole shrink phase; 0 means unbounded.
	ShrinkTimeoutMS int64

	// ShrinkAssessmentRuns is the number of repeat runs used to assess a
	// flaky candidate's reproduction rate. Default 20.
	ShrinkAssessmentRuns int

	// ShrinkAdaptiveMultiplier scales the observed per-failure duration
	// into the per-candidate time budget during flaky shrinking. Default 3.
	ShrinkAdaptiveMultiplier float64

	// ReassessOnEachSuccessfulShrink re-runs the assessment after every
	// successful shrink step instead of once up front. Default true.
	ReassessOnEachSuccessfulShrink bool

	// ShrinkStrategy selects sibling traversal order at each level of the
	// shrink loop: "bfs" (default) tries siblings in each shrinker's own
	// coarsest-reduction-first order; "dfs" reverses that, trying the
	// least-reduced sibling first and moving on to coarser ones.
	ShrinkStrategy string

	// OnReproductionStats is invoked after every flaky-mode assessment.
	OnReproductionStats func(ReproductionStats)

	// Logger receives progress/failure messages; defaults to the *testing.T
	// passed to ForAll when nil.
	Logger Logger
}

var (
	flagSeed        = flag.Int64("rapidx.seed", 0, "Random seed for test case generation")
	flagExamples    = flag.Int("rapidx.examples", 1000, "Number of test cases to generate")
	flagShrinkStrat = flag.String("rapidx.shrink.strategy", "bfs", "Shrinking strategy (bfs or dfs)")
)

// Default returns a Config with default values based on command-line flags
// and the documented defaults from spec.md §4.8/§4.9.
func Default() Config {
	return Config{
		Seed:                           *flagSeed,
		NumRuns:                        *flagExamples,
		ShrinkMaxRetries:               0,
		ShrinkStrategy:                 *flagShrinkStrat,
		ShrinkAssessmentRuns:           20,
		ShrinkAdaptiveMultiplier:       3.0,
		ReassessOnEachSuccessfulShrink: true,
	}
}

func (c Config) effectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return globalSeedCached()
}

func (c Config) numRuns() int {
	if c.NumRuns > 0 {
		return c.NumRuns
	}
	return 1000
}

func (c Config) shrinkAssessmentRuns() int {
	if c.ShrinkAssessmentRuns > 0 {
		return c.ShrinkAssessmentRuns
	}
	return 20
}

func (c Config) shrinkAdaptiveMultiplier() float64 {
	if c.ShrinkAdaptiveMultiplier > 0 {
		return c.ShrinkAdaptiveMultiplier
	}
	return 3.0
}

func (c Config) logf(t Logger, format string, args ...any) {
	logger := c.Logger
	if logger == nil {
		logger = t
	}
	if logger != nil {
		logger.Logf(format, args...)
	}
}

func (c Config) deadline() time.Time {
	if c.MaxDurationMS <= 0 {
		return time.Time{}
	}
	return time.Now().Add(time.Duration(c.MaxDurationMS) * time.Millisecond)
}

// PropertyBody is the property closure ForAll drives: it receives the
// generated value plus the run's PropertyContext, through which it may
// record tags/stats (prop_tag/prop_classify/prop_stat), expectation
// failures (prop_expect*), stat assertions and discard/success signals
// (spec.md §6).
type PropertyBody[T any] func(t *testing.T, v T, ctx *PropertyContext) Outcome

// ForAll runs cfg.NumRuns examples drawn from g against body, reporting the
// shrunk counterexample via t.Fatalf on the first reproducible failure. It
// implements the per-run sequence of spec.md §4.8 and delegates to the
// shrinking loop (spec.md §4.9) on failure.
func ForAll[T any](t *testing.T, cfg Config, g gen.Generator[T]) func(PropertyBody[T]) {
	return func(body PropertyBody[T]) {
		t.Helper()
		seed := cfg.effectiveSeed()
		r := xrand.NewFromSeed(uint64(seed))
		deadline := cfg.deadline()

		cfg.logf(t, "[gorapid] seed=%d num_runs=%d max_duration_ms=%d shrink_max_retries=%d",
			seed, cfg.numRuns(), cfg.MaxDurationMS, cfg.ShrinkMaxRetries)

		ctx := NewPropertyContext()

		for i := 0; i < cfg.numRuns(); i++ {
			if !deadline.IsZero() && time.Now().After(deadline) {
				cfg.logf(t, "[gorapid] deadline reached after %d runs", i)
				break
			}

			preFailureRand := r
			if cfg.OnStartup != nil {
				cfg.OnStartup()
			}

			sh := g.Generate(&r, gen.DefaultSize)
			name := fmt.Sprintf("ex#%d", i+1)

			outcome := runOnce(t, name, sh.Value(), ctx, body)
			if cfg.OnCleanup != nil {
				cfg.OnCleanup()
			}

			switch outcome.Kind {
			case Discard:
				continue
			case Success:
				continue
			case Fail:
				shrinkAndReport(t, cfg, name, seed, preFailureRand, g, body)
				return
			}
		}

		if err := ctx.checkAssertions(); err != nil {
			t.Fatalf("[gorapid] %v", err)
		}
	}
}

// runOnce invokes body once against v inside its own subtest, folding a
// recorded expectation failure (spec.md §4.8 step 6) into the outcome
// alongside the closure's own return value and t.Fatal/Error calls.
func runOnce[T any](t *testing.T, name string, v T, ctx *PropertyContext, body PropertyBody[T]) Outcome {
	var outcome Outcome
	passed := t.Run(name, func(st *testing.T) {
		ctx.beginRun()
		outcome = body(st, v, ctx)
		if sig, ok := ctx.Signal(); ok {
			outcome = sig
		} else if ctx.HasFailures() {
			outcome = OutcomeFail("prop_expect* recorded a failure", nil)
		}
		if outcome.Kind == Fail || st.Failed() {
			if outcome.Kind != Fail {
				outcome = OutcomeFail("t.Fatal/Error called", nil)
			}
			st.Fail()
		}
	})
	if !passed && outcome.Kind != Fail {
		outcome = OutcomeFail("subtest reported failure", nil)
	}
	return outcome
}

// Example runs body once per literal argument (spec.md §4.8's non-randomized
// "example" variant).
func Example[T any](t *testing.T, args []T, body func(*testing.T, T)) {
	t.Helper()
	for i, a := range args {
		t.Run(fmt.Sprintf("example#%d", i+1), func(st *testing.T) { body(st, a) })
	}
}

// Matrix iterates the Cartesian product of lists, short-circuiting on the
// first failing combination (spec.md §4.8's "matrix" variant).
func Matrix[T any](t *testing.T, lists [][]T, body func(*testing.T, []T) bool) int {
	t.Helper()
	combos := cartesian(lists)
	count := 0
	for _, combo := range combos {
		count++
		ok := t.Run(fmt.Sprintf("matrix#%d", count), func(st *testing.T) {
			if !body(st, combo) {
				st.Fail()
			}
		})
		if !ok {
			return count
		}
	}
	return count
}

func cartesian[T any](lists [][]T) [][]T {
	if len(lists) == 0 {
		return [][]T{{}}
	}
	rest := cartesian(lists[1:])
	out := make([][]T, 0, len(lists[0])*len(rest))
	for _, v := range lists[0] {
		for _, r := range rest {
			combo := append([]T{v}, r...)
			out = append(out, combo)
		}
	}
	return out
}
