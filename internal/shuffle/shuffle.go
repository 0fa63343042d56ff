package shuffle

import "math/rand/v2"

// Source supplies uniformly distributed integers.
type Source interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// Default returns a non-deterministic source.
func Default() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Seeded returns a deterministic source for tests and reproducible runs.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a random permutation of seq. The input is not modified.
// Uses Fisher–Yates from the last index down to 1.
func Shuffle[T any](src Source, seq []T) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Indices returns a random permutation of 0..n-1.
func Indices(src Source, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Shuffle(src, idx)
}
