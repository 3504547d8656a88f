package prop

import (
	"testing"
	"time"

	"github.com/lucaskalb/gorapid/shrink"
	"github.com/stretchr/testify/require"
)

// Note: a property that genuinely fails and shrinks is demonstrated under
// testfailures/, not here — runOnce reports a Fail outcome via st.Fail() on
// a real subtest, and testing.common.Fail() walks up c.parent recursively,
// so any test in this file that drove a real failure through ForAll would
// itself be reported FAIL. These tests exercise the same machinery without
// ever returning OutcomeFail.

func TestAssessReportsReproductionStatsForAlwaysPassingCandidate(t *testing.T) {
	cfg := Default()
	cfg.ShrinkAssessmentRuns = 5

	var stats []ReproductionStats
	cfg.OnReproductionStats = func(s ReproductionStats) { stats = append(stats, s) }

	sh := shrink.New(7)
	budget := assess(t, "ex#1", cfg, sh, func(st *testing.T, x int, ctx *PropertyContext) Outcome {
		return OutcomePass()
	}, time.Now())

	require.Len(t, stats, 1)
	require.Equal(t, 5, stats[0].TotalRuns)
	require.Equal(t, 0, stats[0].NumReproduced)
	require.Equal(t, "7", stats[0].ArgsShown)
	require.GreaterOrEqual(t, budget.Nanoseconds(), int64(0))
}

func TestDeterministicShrinkStopsImmediatelyWhenNoChildFails(t *testing.T) {
	sh := shrink.New(0) // no shrink children: nothing to descend into
	min, steps := deterministicShrink(t, "ex#1", Default(), sh, func(st *testing.T, x int, ctx *PropertyContext) Outcome {
		return OutcomePass()
	})
	require.Equal(t, 0, min)
	require.Equal(t, 0, steps)
}

func TestFlakyShrinkStopsImmediatelyWhenNoChildReproduces(t *testing.T) {
	cfg := Config{ShrinkMaxRetries: 3, ShrinkAssessmentRuns: 4}
	sh := shrink.New(0)
	min, steps := flakyShrink(t, "ex#1", cfg, sh, func(st *testing.T, x int, ctx *PropertyContext) Outcome {
		return OutcomePass()
	}, time.Now())
	require.Equal(t, 0, min)
	require.Equal(t, 0, steps)
}

func TestMaxShrinkStepsIsPositive(t *testing.T) {
	require.Greater(t, maxShrinkSteps(Default()), 0)
}

// TestSiblingOrderHonorsShrinkStrategy pins down the one concrete behavior
// difference cfg.ShrinkStrategy selects: "bfs" walks a shrinker's own
// coarsest-first order, "dfs" reverses it to try the least-reduced sibling
// first.
func TestSiblingOrderHonorsShrinkStrategy(t *testing.T) {
	sh := shrink.Int(100, 0, 100)
	forward := sh.Shrinks().Take(4).ToSlice()
	require.NotEmpty(t, forward)

	bfs := siblingOrder(sh, Config{ShrinkStrategy: "bfs"})
	require.Equal(t, forward[0].Value(), bfs[0].Value())

	dfs := siblingOrder(sh, Config{ShrinkStrategy: "dfs"})
	require.Equal(t, forward[0].Value(), dfs[len(dfs)-1].Value())
	require.NotEqual(t, bfs[0].Value(), dfs[0].Value())
}
