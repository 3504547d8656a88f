//go:build examples
// +build examples

package examples

import (
	"fmt"
	"testing"

	"github.com/lucaskalb/gorapid/gen"
	"github.com/lucaskalb/gorapid/prop"
)

// counter is the system-under-test; counterModel is the abstract model the
// property checks it against after every action sequence.
type counter struct{ value int }
type counterModel struct{ value int }

// TestCounterStaysInSyncWithModel demonstrates stateful testing: actions
// mutate both the real counter and a trivial model in lockstep, and
// PostCheck asserts they never diverge.
func TestCounterStaysInSyncWithModel(t *testing.T) {
	increment := prop.Action[counter, counterModel]{
		Name: "increment",
		Run: func(obj *counter, model *counterModel) {
			obj.value++
			model.value++
		},
	}
	decrement := prop.Action[counter, counterModel]{
		Name:         "decrement",
		Precondition: func(obj counter, model counterModel) bool { return obj.value > 0 },
		Run: func(obj *counter, model *counterModel) {
			obj.value--
			model.value--
		},
	}
	reset := prop.Action[counter, counterModel]{
		Name: "reset",
		Run: func(obj *counter, model *counterModel) {
			obj.value = 0
			model.value = 0
		},
	}

	p := prop.StatefulProperty[counter, counterModel]{
		InitialGen:   gen.Const(counter{}),
		ModelFactory: func(c counter) counterModel { return counterModel{value: c.value} },
		ActionGen:    gen.OneOf(gen.Const(increment), gen.Const(decrement), gen.Const(reset)),
		SequenceSize: gen.Size{Min: 0, Max: 30},
		PostCheck: func(obj *counter, model *counterModel) error {
			if obj.value != model.value {
				return fmt.Errorf("counter diverged from model: obj=%d model=%d", obj.value, model.value)
			}
			return nil
		},
	}

	p.Run(t, prop.Config{Seed: 12345, NumRuns: 200})
}
