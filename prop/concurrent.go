package prop

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// logEntry is one append-only record in the concurrent driver's shared log.
// Index is assigned by an atomic counter so entries can be linearized
// afterwards by insertion order (spec.md §4.10 step 4).
type logEntry struct {
	index  int64
	thread int // -1 for the front list
	name   string
	start  bool // true = start marker, false = end marker; ignored for front
}

// concurrentLog is the library's only shared mutable state during a
// concurrent run: an append-only slice guarded by an atomic insertion
// counter (spec.md §5's "atomic counter for the insertion index").
type concurrentLog struct {
	mu      sync.Mutex
	entries []logEntry
	counter atomic.Int64
}

func (l *concurrentLog) append(e logEntry) {
	l.mu.Lock()
	e.index = l.counter.Add(1)
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// Entries returns a snapshot of the log ordered by insertion index.
func (l *concurrentLog) Entries() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]logEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Concurrency adds a stress/interleaving driver on top of StatefulProperty:
// a front action list runs serially, then MaxConcurrency rear lists run
// concurrently, each recording start/end markers to a shared log (spec.md
// §4.10). Shrinking is not attempted for concurrent failures, per the
// spec's final sentence on the concurrent driver.
type Concurrency[Obj, Model any] struct {
	InitialGen     gen.Generator[Obj]
	ModelFactory   func(Obj) Model
	ActionGen      gen.Generator[Action[Obj, Model]]
	FrontSize      gen.Size
	RearSize       gen.Size
	MaxConcurrency int
	PostCheck      func(obj *Obj, model *Model) error
}

func (c Concurrency[Obj, Model]) frontSize() gen.Size {
	if c.FrontSize.Min == 0 && c.FrontSize.Max == 0 {
		return gen.Size{Min: 0, Max: 10}
	}
	return c.FrontSize
}

func (c Concurrency[Obj, Model]) rearSize() gen.Size {
	if c.RearSize.Min == 0 && c.RearSize.Max == 0 {
		return gen.Size{Min: 0, Max: 10}
	}
	return c.RearSize
}

func (c Concurrency[Obj, Model]) maxConcurrency() int {
	if c.MaxConcurrency > 0 {
		return c.MaxConcurrency
	}
	return 2
}

// concurrentDraw bundles one run's generated inputs: the initial object, a
// front list, and one rear list per worker.
type concurrentDraw[Obj, Model any] struct {
	Obj   Obj
	Front []Action[Obj, Model]
	Rear  [][]Action[Obj, Model]
}

// Run draws one concurrentDraw per example and executes it per spec.md
// §4.10 steps 1-5: front serially, then N workers racing on a shared "go"
// flag after all are observed ready, joined before PostCheck.
func (c Concurrency[Obj, Model]) Run(t *testing.T, cfg Config) {
	t.Helper()
	n := c.maxConcurrency()

	g := gen.From(func(r *xrand.Random, sz gen.Size) shrink.Shrinkable[concurrentDraw[Obj, Model]] {
		objSh := c.InitialGen.Generate(r, sz)
		// Lists are drawn with no runner size so that frontSize/rearSize apply.
		frontSh := gen.SliceOf(c.ActionGen, c.frontSize()).Generate(r, gen.Size{})
		rear := make([][]Action[Obj, Model], n)
		for i := 0; i < n; i++ {
			rear[i] = gen.SliceOf(c.ActionGen, c.rearSize()).Generate(r, gen.Size{}).Value()
		}
		draw := concurrentDraw[Obj, Model]{Obj: objSh.Value(), Front: frontSh.Value(), Rear: rear}
		return shrink.New(draw) // concurrent failures are not shrunk (spec.md §4.10)
	})

	ForAll(t, cfg, g)(func(st *testing.T, draw concurrentDraw[Obj, Model], _ *PropertyContext) Outcome {
		obj := draw.Obj
		var m Model
		if c.ModelFactory != nil {
			m = c.ModelFactory(obj)
		}

		log := &concurrentLog{}
		for _, a := range draw.Front {
			if !a.allowed(obj, m) {
				log.append(logEntry{thread: -1, name: a.Name})
				continue
			}
			a.apply(&obj, &m, NewContext())
			log.append(logEntry{thread: -1, name: a.Name})
		}

		var ready sync.WaitGroup
		ready.Add(n)
		goCh := make(chan struct{}) // closed once, the "go" latch every worker waits on
		var wg sync.WaitGroup
		wg.Add(n)

		// Workers share obj/m by reference: the library inserts no
		// synchronization around the SUT, matching spec.md §4.10's
		// "shared-resource policy" — callers' actions must be thread-safe.
		for i := 0; i < n; i++ {
			go func(worker int) {
				defer wg.Done()
				ready.Done()
				<-goCh
				ctx := NewContext()
				for _, a := range draw.Rear[worker] {
					log.append(logEntry{thread: worker, name: a.Name, start: true})
					if a.allowed(obj, m) {
						a.apply(&obj, &m, ctx)
					}
					log.append(logEntry{thread: worker, name: a.Name, start: false})
				}
			}(i)
		}

		ready.Wait()
		close(goCh)
		wg.Wait()

		wantEntries := len(draw.Front)
		for _, r := range draw.Rear {
			wantEntries += 2 * len(r)
		}
		if got := len(log.Entries()); got != wantEntries {
			err := fmt.Errorf("log has %d entries, want %d (front=%d rear=%v)", got, wantEntries, len(draw.Front), lens(draw.Rear))
			st.Errorf("%v", err)
			return OutcomeFail(err.Error(), err)
		}

		if c.PostCheck != nil {
			if err := c.PostCheck(&obj, &m); err != nil {
				st.Errorf("post-check failed: %v", err)
				return OutcomeFail(err.Error(), err)
			}
		}
		return OutcomePass()
	})
}

func lens[T any](xs [][]T) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = len(x)
	}
	return out
}
