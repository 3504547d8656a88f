package shrink

import "github.com/lucaskalb/gorapid/stream"

// String builds the shrink tree for a string over a fixed alphabet whose
// simplest character is floor (the generator's alphabet[0]): first the
// length shrinks down to minLen (dropping characters off the tail), and
// once a given length can shrink no further, characters are tamed towards
// floor one at a time, right to left.
func String(value string, floor rune, minLen int) Shrinkable[string] {
	runes := []rune(value)
	n := len(runes)
	if minLen > n {
		minLen = n
	}
	lenShr := Uint(uint64(n), uint64(minLen), uint64(n))
	sized := Map(lenShr, func(l uint64) []rune {
		cp := make([]rune, l)
		copy(cp, runes[:l])
		return cp
	})
	withChars := AndThen(sized, func(leaf Shrinkable[[]rune]) stream.Stream[Shrinkable[[]rune]] {
		v := leaf.Value()
		return runePositionShrinks(v, floor, len(v)-1)
	})
	return Map(withChars, func(r []rune) string { return string(r) })
}

func runePositionShrinks(runes []rune, floor rune, i int) stream.Stream[Shrinkable[[]rune]] {
	if i < 0 {
		return stream.Empty[Shrinkable[[]rune]]()
	}
	rest := func() stream.Stream[Shrinkable[[]rune]] { return runePositionShrinks(runes, floor, i-1) }
	if runes[i] == floor {
		return rest()
	}
	thisPos := stream.Map(shrinkCharTowards(runes[i], floor).Shrinks(), func(c Shrinkable[int32]) Shrinkable[[]rune] {
		next := make([]rune, len(runes))
		copy(next, runes)
		next[i] = c.Value()
		return runeNode(next, floor)
	})
	return thisPos.ConcatLazy(rest)
}

func runeNode(runes []rune, floor rune) Shrinkable[[]rune] {
	return NewWithShrinks(runes, func() stream.Stream[Shrinkable[[]rune]] {
		return runePositionShrinks(runes, floor, len(runes)-1)
	})
}

// shrinkCharTowards bisects value towards target, reusing the signed
// integer binary-search tree shifted onto an arbitrary target instead of 0.
func shrinkCharTowards(value, target rune) Shrinkable[rune] {
	shifted := int64(value) - int64(target)
	return Map(shrinkTowardsZeroSigned(shifted), func(v int64) rune { return rune(v) + target })
}
