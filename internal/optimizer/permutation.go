package optimizer

import (
	"iter"
	"slices"
)

// Permutations yields every ordering of the indices 0..n-1 in lexicographic
// order, one at a time. Each yielded slice is owned by the caller. The
// sequence can be ranged over any number of times; n = 0 yields a single
// empty ordering.
func Permutations(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		for {
			if !yield(slices.Clone(perm)) {
				return
			}
			if !nextPermutation(perm) {
				return
			}
		}
	}
}

// Orderings yields every ordering of items.
func Orderings[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for perm := range Permutations(len(items)) {
			ordered := make([]T, len(perm))
			for i, idx := range perm {
				ordered[i] = items[idx]
			}
			if !yield(ordered) {
				return
			}
		}
	}
}

// nextPermutation rearranges p into the next permutation in lexicographic
// order. It returns false once p is the last one.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}
