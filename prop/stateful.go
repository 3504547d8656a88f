package prop

import (
	"fmt"
	"testing"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Context is per-sequence, user-opaque scratch space threaded through
// actions that opt into it (spec.md §3's Action/Context).
type Context struct {
	values map[string]any
}

// NewContext returns an empty Context.
func NewContext() *Context { return &Context{values: make(map[string]any)} }

// Set stores a value under key for later retrieval by another action in the
// same sequence.
func (c *Context) Set(key string, v any) { c.values[key] = v }

// Get retrieves a value previously stored under key.
func (c *Context) Get(key string) (any, bool) { v, ok := c.values[key]; return v, ok }

// SimpleAction is a named unit of work over the system-under-test alone,
// ignoring any model (spec.md §3's SimpleAction<Obj>).
type SimpleAction[Obj any] struct {
	Name string
	Run  func(obj *Obj)
}

// Action is a named unit of work over the system-under-test and an
// optional abstract model, with an optional Context and an optional
// Precondition gating whether it may run against the current state
// (recovered from original_source/proptest/stateful/action.hpp, dropped by
// the distilled spec and restored here per SPEC_FULL §6.10).
type Action[Obj, Model any] struct {
	Name           string
	Run            func(obj *Obj, model *Model)
	RunWithContext func(obj *Obj, model *Model, ctx *Context)
	Precondition   func(obj Obj, model Model) bool
}

// LiftAction raises a SimpleAction to an Action that ignores the model.
func LiftAction[Obj, Model any](a SimpleAction[Obj]) Action[Obj, Model] {
	return Action[Obj, Model]{
		Name: a.Name,
		Run:  func(obj *Obj, _ *Model) { a.Run(obj) },
	}
}

// apply invokes whichever of Run/RunWithContext is set.
func (a Action[Obj, Model]) apply(obj *Obj, model *Model, ctx *Context) {
	if a.RunWithContext != nil {
		a.RunWithContext(obj, model, ctx)
		return
	}
	if a.Run != nil {
		a.Run(obj, model)
	}
}

func (a Action[Obj, Model]) allowed(obj Obj, model Model) bool {
	return a.Precondition == nil || a.Precondition(obj, model)
}

// StateTransition records one executed or skipped action for reporting.
type StateTransition[Obj, Model any] struct {
	Name    string
	Skipped bool
}

// StatefulResult is the outcome of running one action sequence: the final
// object/model pair plus the per-action execution history.
type StatefulResult[Obj, Model any] struct {
	FinalObj   Obj
	FinalModel Model
	History    []StateTransition[Obj, Model]
}

// StatefulProperty generates an initial object, optionally derives a model
// from it, draws a sequence of actions, and checks PostCheck after applying
// them all in order (spec.md §4.10's serial mode).
type StatefulProperty[Obj, Model any] struct {
	InitialGen   gen.Generator[Obj]
	ModelFactory func(Obj) Model
	ActionGen    gen.Generator[Action[Obj, Model]]
	SequenceSize gen.Size
	PostCheck    func(obj *Obj, model *Model) error
}

// sequenceSize returns the configured size, defaulting to [0,20] actions
// per sequence.
func (p StatefulProperty[Obj, Model]) sequenceSize() gen.Size {
	if p.SequenceSize.Min == 0 && p.SequenceSize.Max == 0 {
		return gen.Size{Min: 0, Max: 20}
	}
	return p.SequenceSize
}

// Run composes the stateful property into a plain ForAll over
// (Obj, []Action) and delegates to the ordinary runner, which gives the
// action list ordinary list-like shrinking (membership-wise drop +
// element-wise replace) for free per spec.md §4.10.
func (p StatefulProperty[Obj, Model]) Run(t *testing.T, cfg Config) {
	t.Helper()
	actions := gen.SliceOf(p.ActionGen, p.sequenceSize())
	// The runner's own size would replace sequenceSize; draw with none.
	g := gen.PairOf(p.InitialGen, gen.From(func(r *xrand.Random, _ gen.Size) shrink.Shrinkable[[]Action[Obj, Model]] {
		return actions.Generate(r, gen.Size{})
	}))

	ForAll(t, cfg, g)(func(st *testing.T, pair shrink.PairValue[Obj, []Action[Obj, Model]], _ *PropertyContext) Outcome {
		obj := pair.First
		actions := pair.Second

		var m Model
		if p.ModelFactory != nil {
			m = p.ModelFactory(obj)
		}

		result := runActions(&obj, &m, actions, cfg)

		if p.PostCheck != nil {
			if err := p.PostCheck(&obj, &m); err != nil {
				st.Errorf("post-check failed after %d actions: %v", len(result.History), err)
				return OutcomeFail(err.Error(), err)
			}
		}
		return OutcomePass()
	})
}

// runActions applies each action in order, skipping any whose precondition
// fails against the current state, and records a transcript.
func runActions[Obj, Model any](obj *Obj, model *Model, actions []Action[Obj, Model], cfg Config) StatefulResult[Obj, Model] {
	ctx := NewContext()
	history := make([]StateTransition[Obj, Model], 0, len(actions))

	for _, a := range actions {
		if !a.allowed(*obj, *model) {
			history = append(history, StateTransition[Obj, Model]{Name: a.Name, Skipped: true})
			continue
		}
		if cfg.OnActionStart != nil {
			cfg.OnActionStart(a.Name)
		}
		a.apply(obj, model, ctx)
		if cfg.OnActionEnd != nil {
			cfg.OnActionEnd(a.Name)
		}
		history = append(history, StateTransition[Obj, Model]{Name: a.Name})
	}

	return StatefulResult[Obj, Model]{FinalObj: *obj, FinalModel: *model, History: history}
}

// TranscriptString renders a history as a compact action-name transcript.
// The serial and concurrent drivers' failure reports do not include it.
func TranscriptString[Obj, Model any](history []StateTransition[Obj, Model]) string {
	out := ""
	for i, h := range history {
		if i > 0 {
			out += " -> "
		}
		if h.Skipped {
			out += fmt.Sprintf("(%s skipped)", h.Name)
		} else {
			out += h.Name
		}
	}
	return out
}
