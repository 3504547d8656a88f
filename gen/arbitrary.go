package gen

import (
	"reflect"
	"sync"
)

// arbitraryRegistry maps a type to the default generator for it, erased to
// AnyGenerator since Go generics have no type-based dispatch: looking a
// generator up by reflect.Type is the only way to pick one generically at
// runtime (e.g. inside a combinator that only knows T through a type
// parameter it received from its own caller).
var (
	arbitraryMu       sync.RWMutex
	arbitraryRegistry = map[reflect.Type]AnyGenerator{}
)

func init() {
	RegisterArbitrary(Int(DefaultSize))
	RegisterArbitrary(Int64(DefaultSize))
	RegisterArbitrary(Uint(DefaultSize))
	RegisterArbitrary(Uint64(DefaultSize))
	RegisterArbitrary(Bool())
	RegisterArbitrary(Float32(DefaultSize))
	RegisterArbitrary(Float64(DefaultSize))
	RegisterArbitrary(StringAlphaNum(Size{Min: 0, Max: 32}))
}

// RegisterArbitrary installs g as the default generator for T, replacing
// any previous registration.
func RegisterArbitrary[T any](g Generator[T]) {
	arbitraryMu.Lock()
	defer arbitraryMu.Unlock()
	var zero T
	arbitraryRegistry[reflect.TypeOf(zero)] = ToAny(g)
}

// Arbitrary returns the default generator for T, panicking if none has been
// registered (built-in scalar types are registered by this package's
// init; anything else must be registered explicitly with
// RegisterArbitrary before first use).
func Arbitrary[T any]() Generator[T] {
	arbitraryMu.RLock()
	var zero T
	typ := reflect.TypeOf(zero)
	a, ok := arbitraryRegistry[typ]
	arbitraryMu.RUnlock()
	if !ok {
		panic("gen.Arbitrary: no generator registered for type " + typeName(typ))
	}
	return FromAny[T](a)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
