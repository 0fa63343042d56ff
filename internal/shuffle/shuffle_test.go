package shuffle

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_IsPermutation(t *testing.T) {
	src := Seeded(7)
	inputs := [][]string{
		nil,
		{"a"},
		{"a", "b"},
		{"a", "b", "c", "d", "e", "f", "g"},
		{"x", "x", "y", "z", "z", "z"},
	}

	for _, in := range inputs {
		for range 50 {
			got := Shuffle(src, in)
			require.Len(t, got, len(in))

			want := slices.Clone(in)
			sorted := slices.Clone(got)
			slices.Sort(want)
			slices.Sort(sorted)
			assert.Equal(t, want, sorted)
		}
	}
}

func TestShuffle_DoesNotModifyInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	_ = Shuffle(Seeded(1), in)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, in)
}

func TestShuffle_DeterministicWithSameSeed(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	a := Shuffle(Seeded(42), in)
	b := Shuffle(Seeded(42), in)
	assert.Equal(t, a, b)
}

func TestShuffle_ReachesEveryPosition(t *testing.T) {
	// Each element should land in each slot at least once over many runs.
	src := Default()
	in := []int{0, 1, 2, 3}
	seen := make(map[[2]int]bool)
	for range 2000 {
		for pos, v := range Shuffle(src, in) {
			seen[[2]int{v, pos}] = true
		}
	}
	assert.Len(t, seen, len(in)*len(in))
}

// fixedSource always returns the smallest allowed index.
type fixedSource struct{ calls []int }

func (f *fixedSource) IntN(n int) int {
	f.calls = append(f.calls, n)
	return 0
}

func TestShuffle_WalksFromLastIndexDown(t *testing.T) {
	src := &fixedSource{}
	got := Shuffle(src, []string{"a", "b", "c", "d"})

	assert.Equal(t, []int{4, 3, 2}, src.calls)
	// i=3 swaps with 0: d b c a; i=2 swaps with 0: c b d a; i=1 swaps with 0: b c d a.
	assert.Equal(t, []string{"b", "c", "d", "a"}, got)
}

func TestIndices(t *testing.T) {
	got := Indices(Seeded(3), 6)
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, sorted)
	assert.Empty(t, Indices(Seeded(3), 0))
}
