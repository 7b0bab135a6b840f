package optimizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutations(t *testing.T) {
	var got [][]int
	for perm := range Permutations(3) {
		got = append(got, perm)
	}
	want := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	assert.Equal(t, want, got)
}

func TestPermutationsCount(t *testing.T) {
	factorial := 1
	for n := 0; n <= 6; n++ {
		if n > 0 {
			factorial *= n
		}
		seen := make(map[string]bool)
		for perm := range Permutations(n) {
			require.Len(t, perm, n)
			seen[fmt.Sprint(perm)] = true
		}
		assert.Len(t, seen, factorial, "n=%d", n)
	}
}

func TestPermutationsEmpty(t *testing.T) {
	count := 0
	for perm := range Permutations(0) {
		assert.Empty(t, perm)
		count++
	}
	assert.Equal(t, 1, count)
}

func TestPermutationsRestartAndStop(t *testing.T) {
	seq := Permutations(4)

	count := 0
	for range seq {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)

	// Ranging again starts from the first ordering
	for perm := range seq {
		assert.Equal(t, []int{0, 1, 2, 3}, perm)
		break
	}
}

func TestOrderings(t *testing.T) {
	var got [][]string
	for ordering := range Orderings([]string{"x", "y"}) {
		got = append(got, ordering)
	}
	assert.Equal(t, [][]string{{"x", "y"}, {"y", "x"}}, got)
}
