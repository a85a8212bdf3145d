// Package sample draws distinct indices without replacement.
package sample

import "fmt"

// Rand is the random source Indices draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Indices returns k distinct integers from [0, n) in draw order using a
// partial Fisher-Yates shuffle: each draw swaps the picked slot with the last
// live slot of the pool and shrinks it by one.
func Indices(r Rand, n, k int) ([]int, error) {
	if n < 1 || k < 0 || k > n {
		return nil, fmt.Errorf("sample: k=%d out of range for n=%d", k, n)
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}

	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := r.Intn(n - i)
		out[i] = pool[j]
		pool[j] = pool[n-i-1]
	}
	return out, nil
}
