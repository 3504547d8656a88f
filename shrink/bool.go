package shrink

import "github.com/lucaskalb/gorapid/stream"

// Bool builds the shrink tree for a boolean: true shrinks to false, false
// has no shrinks.
func Bool(value bool) Shrinkable[bool] {
	if !value {
		return New(false)
	}
	return NewWithShrinks(true, func() stream.Stream[Shrinkable[bool]] {
		return stream.One(New(false))
	})
}
