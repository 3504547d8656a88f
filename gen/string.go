package gen

import (
	"github.com/lucaskalb/gorapid/shrink"
	"github.com/lucaskalb/gorapid/xrand"
)

// Common alphabet shortcuts (plain ASCII to avoid surprises).
const (
	AlphabetLower    = "abcdefghijklmnopqrstuvwxyz"
	AlphabetUpper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	AlphabetAlpha    = AlphabetLower + AlphabetUpper
	AlphabetDigits   = "0123456789"
	AlphabetAlphaNum = AlphabetAlpha + AlphabetDigits
	AlphabetASCII    = AlphabetAlphaNum + " !\"#$%&'()*+,-./:;<=>?@[\\]^_{|}~"
)

// String generates strings drawn from an alphabet (a set of runes) sized by
// Size.
//   - If size.Min/Max == 0, uses the default Min=0, Max=32.
//   - A non-zero Size passed to Generate (such as the runner's) replaces size.
//   - If alphabet is empty, uses AlphabetAlphaNum.
//
// Shrinks first by length (down to size.Min), then by taming characters
// towards alphabet[0], right to left.
func String(alphabet string, size Size) Generator[string] {
	return From(func(r *xrand.Random, sz Size) shrink.Shrinkable[string] {
		if len(alphabet) == 0 {
			alphabet = AlphabetAlphaNum
		}
		if size.Min == 0 && size.Max == 0 {
			size.Min, size.Max = 0, 32
		}
		if sz.Min != 0 || sz.Max != 0 {
			size = sz
		}
		if size.Max < size.Min {
			size.Max = size.Min
		}

		n := r.Size(size.Min, size.Max+1)
		b := make([]rune, n)
		for i := 0; i < n; i++ {
			b[i] = rune(alphabet[r.Size(0, len(alphabet))])
		}
		cur := string(b)
		floor := rune(alphabet[0])
		return shrink.String(cur, floor, size.Min)
	})
}

// StringAlpha generates strings over the letters-only alphabet.
func StringAlpha(size Size) Generator[string] { return String(AlphabetAlpha, size) }

// StringAlphaNum generates strings over the alphanumeric alphabet.
func StringAlphaNum(size Size) Generator[string] { return String(AlphabetAlphaNum, size) }

// StringDigits generates strings over the digits-only alphabet.
func StringDigits(size Size) Generator[string] { return String(AlphabetDigits, size) }

// StringASCII generates strings over the printable-ASCII alphabet.
func StringASCII(size Size) Generator[string] { return String(AlphabetASCII, size) }
