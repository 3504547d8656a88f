package gen

// autoRangeUnsigned decides the final range for unsigned integers by
// combining the local "size" and the "size" coming from the runner. We
// prefer the largest range informed; if nothing is informed, we use
// [0, 100].
func autoRangeUnsigned[T ~uint | ~uint64](local, fromRunner Size) (T, T) {
	M := 0
	for _, s := range []Size{local, fromRunner} {
		if s.Max > M {
			M = s.Max
		}
	}
	if M == 0 {
		M = 100
	}
	return 0, T(M)
}
