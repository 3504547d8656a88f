package prop

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Failure records a single expectation failure captured during a run.
type Failure struct {
	File      string
	Line      int
	Condition string
	Detail    string
}

// assertKind distinguishes the three statistic assertions the spec allows.
type assertKind int

const (
	assertGE assertKind = iota
	assertLE
	assertInRange
)

type statAssertion struct {
	key    string
	kind   assertKind
	lo, hi float64
}

// PropertyContext is the accumulator of tags, failures and statistics
// described in spec.md §3. ForAll creates one context per call and reuses
// it for all of its runs: beginRun clears the failures and the
// discard/success signal before each run, while tags, stats and stat
// assertions accumulate. Each shrink-phase run gets a fresh context.
type PropertyContext struct {
	mu         sync.Mutex
	tags       *prometheus.CounterVec
	failures   []Failure
	assertions []statAssertion
	lastFailed bool
	outcome    Outcome
}

// NewPropertyContext builds an empty context.
func NewPropertyContext() *PropertyContext {
	return &PropertyContext{
		tags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gorapid_property_tag_total",
			Help: "count of values observed for a prop_tag/prop_classify/prop_stat key",
		}, []string{"key", "value"}),
	}
}

// Tag records one occurrence of value under key (prop_tag / prop_classify).
func (c *PropertyContext) Tag(key, value string) {
	c.tags.WithLabelValues(key, value).Inc()
}

// Classify records value under key only when cond holds.
func (c *PropertyContext) Classify(cond bool, key, value string) {
	if cond {
		c.Tag(key, value)
	}
}

// Stat records value under key exactly as Tag does (prop_stat); callers
// render numeric/expression statistics to a string value first.
func (c *PropertyContext) Stat(key string, value string) {
	c.Tag(key, value)
}

// CountOf returns the observed count for one specific (key, value) pair,
// reading the counter back through the prometheus wire format.
func (c *PropertyContext) CountOf(key, value string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var m dto.Metric
	if err := c.tags.WithLabelValues(key, value).Write(&m); err == nil && m.Counter != nil {
		return m.Counter.GetValue()
	}
	return 0
}

// TotalOf returns the total count observed across all values tagged under
// key, summed directly off the CounterVec's collected metric family rather
// than a side-tracked total.
func (c *PropertyContext) TotalOf(key string) float64 {
	ch := make(chan prometheus.Metric, 16)
	go func() {
		c.tags.Collect(ch)
		close(ch)
	}()

	var total float64
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			continue
		}
		for _, lp := range pb.GetLabel() {
			if lp.GetName() == "key" && lp.GetValue() == key {
				total += pb.GetCounter().GetValue()
				break
			}
		}
	}
	return total
}

// beginRun clears the per-run failure/signal state ahead of one closure
// invocation. Tags, stats and registered assertions are left untouched: they
// accumulate across the whole property, per spec.md §6's stat-assertion
// semantics ("checked after NumRuns successful runs").
func (c *PropertyContext) beginRun() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = c.failures[:0]
	c.lastFailed = false
	c.outcome = Outcome{}
}

// Expect records cond as a (possibly failing) expectation (prop_expect).
func (c *PropertyContext) Expect(cond bool, file string, line int, condition, detail string) bool {
	if cond {
		return true
	}
	c.mu.Lock()
	c.failures = append(c.failures, Failure{File: file, Line: line, Condition: condition, Detail: detail})
	c.lastFailed = true
	c.mu.Unlock()
	return false
}

// ExpectEq and ExpectNe mirror prop_expect_eq/ne for comparable types.
// There are no ordered variants (Lt/Gt/Le/Ge).
func ExpectEq[T comparable](c *PropertyContext, got, want T, file string, line int) bool {
	return c.Expect(got == want, file, line, "==", fmt.Sprintf("got %v, want %v", got, want))
}

func ExpectNe[T comparable](c *PropertyContext, got, want T, file string, line int) bool {
	return c.Expect(got != want, file, line, "!=", fmt.Sprintf("got %v, unexpectedly equal to %v", got, want))
}

// Failures returns the accumulated expectation failures for this run.
func (c *PropertyContext) Failures() []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Failure, len(c.failures))
	copy(out, c.failures)
	return out
}

// HasFailures reports whether any prop_expect* call failed during this run.
func (c *PropertyContext) HasFailures() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures) > 0
}

// Discard marks the current run as discarded (prop_discard).
func (c *PropertyContext) Discard() { c.outcome = OutcomeDiscard() }

// SucceedNow marks the current run as trivially successful (prop_success).
func (c *PropertyContext) SucceedNow() { c.outcome = OutcomeSuccess() }

// Signal returns a non-Pass outcome if Discard/SucceedNow was called.
func (c *PropertyContext) Signal() (Outcome, bool) {
	if c.outcome.Kind != Pass {
		return c.outcome, true
	}
	return Outcome{}, false
}

// StatAssertGE registers "total(key) >= bound" to be checked after
// NumRuns successful runs, where total(key) sums the counts of every value
// tagged under key.
func (c *PropertyContext) StatAssertGE(key string, bound float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertions = append(c.assertions, statAssertion{key: key, kind: assertGE, lo: bound})
}

// StatAssertLE registers "total(key) <= bound".
func (c *PropertyContext) StatAssertLE(key string, bound float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertions = append(c.assertions, statAssertion{key: key, kind: assertLE, hi: bound})
}

// StatAssertInRange registers "lo <= total(key) <= hi".
func (c *PropertyContext) StatAssertInRange(key string, lo, hi float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertions = append(c.assertions, statAssertion{key: key, kind: assertInRange, lo: lo, hi: hi})
}

// checkAssertions evaluates every registered stat assertion against total
// counts observed for its key, returning the first violation if any.
func (c *PropertyContext) checkAssertions() error {
	c.mu.Lock()
	assertions := append([]statAssertion(nil), c.assertions...)
	c.mu.Unlock()

	for _, a := range assertions {
		total := c.TotalOf(a.key)
		switch a.kind {
		case assertGE:
			if total < a.lo {
				return fmt.Errorf("stat assertion failed: %q total=%.0f, want >= %.0f", a.key, total, a.lo)
			}
		case assertLE:
			if total > a.hi {
				return fmt.Errorf("stat assertion failed: %q total=%.0f, want <= %.0f", a.key, total, a.hi)
			}
		case assertInRange:
			if total < a.lo || total > a.hi {
				return fmt.Errorf("stat assertion failed: %q total=%.0f, want in [%.0f,%.0f]", a.key, total, a.lo, a.hi)
			}
		}
	}
	return nil
}
