package prop

import (
	"fmt"
	"testing"
	"time"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// ReproductionStats summarizes one flaky-shrinking assessment: how many of
// total_runs reproduced the failure, how long the assessment took, and the
// best-known shrunk argument rendering at assessment time.
type ReproductionStats struct {
	NumReproduced int
	TotalRuns     int
	ElapsedSec    float64
	ArgsShown     string
}

// maxSiblingsPerLevel bounds how many candidates siblingOrder materializes
// off a shrink stream; stream.Stream's ToSlice documents that draining an unbounded
// stream does not terminate, so any traversal that needs random access (the
// "dfs" reversal below) has to cap it first.
const maxSiblingsPerLevel = 512

// siblingOrder materializes cur's immediate shrink candidates in the order
// cfg.ShrinkStrategy calls for. "bfs" (the default) tries candidates in the
// stream's own order, which every shrinker in package shrink produces
// coarsest-reduction first. "dfs" reverses that, trying the least-reduced
// sibling first and falling back to coarser ones.
func siblingOrder[T any](cur shrink.Shrinkable[T], cfg Config) []shrink.Shrinkable[T] {
	candidates := cur.Shrinks().Take(maxSiblingsPerLevel).ToSlice()
	if cfg.ShrinkStrategy != "dfs" {
		return candidates
	}
	reversed := make([]shrink.Shrinkable[T], len(candidates))
	for i, c := range candidates {
		reversed[len(candidates)-1-i] = c
	}
	return reversed
}

// shrinkAndReport regenerates the failing argument from the pre-failure RNG
// snapshot and walks its shrink tree to a local minimum, per spec.md §4.9,
// then reports the result via t.Fatalf.
func shrinkAndReport[T any](t *testing.T, cfg Config, name string, seed int64, preFailureRand xrand.Random, g gen.Generator[T], body PropertyBody[T]) {
	t.Helper()
	start := time.Now()
	sh := g.Generate(&preFailureRand, gen.DefaultSize)

	var min T
	var steps int
	if cfg.ShrinkMaxRetries <= 0 {
		min, steps = deterministicShrink(t, name, cfg, sh, body)
	} else {
		min, steps = flakyShrink(t, name, cfg, sh, body, start)
	}

	t.Fatalf("[gorapid] property failed; seed=%d; shrunk_steps=%d\ncounterexample (min): %#v\nreplay: go test -run %q -rapidx.seed=%d",
		seed, steps, min, t.Name(), seed)
}

// deterministicShrink implements spec.md §4.9 step 2: a single run per
// candidate, descending on the first failing sibling (in the order
// cfg.ShrinkStrategy selects) and otherwise moving on, until
// cfg.ShrinkTimeoutMS (when set) has elapsed.
func deterministicShrink[T any](t *testing.T, name string, cfg Config, sh shrink.Shrinkable[T], body PropertyBody[T]) (T, int) {
	t.Helper()
	min := sh.Value()
	steps := 0
	cur := sh
	phaseDeadline := time.Time{}
	if cfg.ShrinkTimeoutMS > 0 {
		phaseDeadline = time.Now().Add(time.Duration(cfg.ShrinkTimeoutMS) * time.Millisecond)
	}
	for steps < maxShrinkSteps(cfg) {
		if !phaseDeadline.IsZero() && time.Now().After(phaseDeadline) {
			break
		}
		next, found := firstFailingChild(t, name, steps, cfg, cur, body)
		if !found {
			break
		}
		min = next.Value()
		steps++
		cur = next
	}
	return min, steps
}

// firstFailingChild runs body once against each sibling in cur's shrink
// stream, in cfg.ShrinkStrategy's order, returning the first one that still
// fails.
func firstFailingChild[T any](t *testing.T, name string, step int, cfg Config, cur shrink.Shrinkable[T], body PropertyBody[T]) (shrink.Shrinkable[T], bool) {
	t.Helper()
	for _, candidate := range siblingOrder(cur, cfg) {
		sname := fmt.Sprintf("%s/shrink#%d", name, step+1)
		outcome := runOnce(t, sname, candidate.Value(), NewPropertyContext(), body)
		if outcome.Kind == Fail {
			return candidate, true
		}
	}
	return shrink.Shrinkable[T]{}, false
}

func maxShrinkSteps(cfg Config) int {
	return 10000
}

// flakyShrink implements spec.md §4.9 step 3: an initial assessment of the
// failing draw's reproduction rate, an adaptive per-candidate time budget
// derived from it, and up to ShrinkMaxRetries+1 attempts per candidate.
func flakyShrink[T any](t *testing.T, name string, cfg Config, sh shrink.Shrinkable[T], body PropertyBody[T], phaseStart time.Time) (T, int) {
	t.Helper()
	min := sh.Value()
	steps := 0
	cur := sh

	budget := assess(t, name, cfg, cur, body, phaseStart)

	phaseDeadline := time.Time{}
	if cfg.ShrinkTimeoutMS > 0 {
		phaseDeadline = phaseStart.Add(time.Duration(cfg.ShrinkTimeoutMS) * time.Millisecond)
	}

	for steps < maxShrinkSteps(cfg) {
		if !phaseDeadline.IsZero() && time.Now().After(phaseDeadline) {
			break
		}
		next, found := firstReproducingChild(t, name, steps, cfg, cur, body, budget)
		if !found {
			break
		}
		min = next.Value()
		steps++
		cur = next
		if cfg.ReassessOnEachSuccessfulShrink {
			budget = assess(t, name, cfg, cur, body, phaseStart)
		}
	}
	return min, steps
}

// assess runs the current candidate ShrinkAssessmentRuns times, derives the
// adaptive per-candidate time budget from the observed failure rate, and
// reports a ReproductionStats record.
func assess[T any](t *testing.T, name string, cfg Config, cur shrink.Shrinkable[T], body PropertyBody[T], phaseStart time.Time) time.Duration {
	t.Helper()
	runs := cfg.shrinkAssessmentRuns()
	start := time.Now()
	failCount := 0
	for i := 0; i < runs; i++ {
		outcome := runOnce(t, fmt.Sprintf("%s/assess#%d", name, i+1), cur.Value(), NewPropertyContext(), body)
		if outcome.Kind == Fail {
			failCount++
		}
	}
	elapsed := time.Since(start)

	stats := ReproductionStats{
		NumReproduced: failCount,
		TotalRuns:     runs,
		ElapsedSec:    elapsed.Seconds(),
		ArgsShown:     fmt.Sprintf("%#v", cur.Value()),
	}
	if cfg.OnReproductionStats != nil {
		cfg.OnReproductionStats(stats)
	}

	budget := time.Duration(cfg.shrinkAdaptiveMultiplier() * float64(elapsed) / float64(max(failCount, 1)))
	if cfg.ShrinkTimeoutMS > 0 {
		cap := time.Duration(cfg.ShrinkTimeoutMS) * time.Millisecond
		if budget > cap {
			budget = cap
		}
	}
	return budget
}

// firstReproducingChild runs up to ShrinkMaxRetries+1 attempts per sibling
// (in cfg.ShrinkStrategy's order), stopping at the first reproducing
// failure, within the per-candidate time budget.
func firstReproducingChild[T any](t *testing.T, name string, step int, cfg Config, cur shrink.Shrinkable[T], body PropertyBody[T], budget time.Duration) (shrink.Shrinkable[T], bool) {
	t.Helper()
	for _, candidate := range siblingOrder(cur, cfg) {
		candidateDeadline := time.Now().Add(budget)
		for attempt := 0; attempt <= cfg.ShrinkMaxRetries; attempt++ {
			if budget > 0 && time.Now().After(candidateDeadline) {
				break
			}
			sname := fmt.Sprintf("%s/shrink#%d/retry#%d", name, step+1, attempt+1)
			outcome := runOnce(t, sname, candidate.Value(), NewPropertyContext(), body)
			if outcome.Kind == Fail {
				return candidate, true
			}
		}
	}
	return shrink.Shrinkable[T]{}, false
}
