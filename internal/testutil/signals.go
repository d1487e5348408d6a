package testutil

import (
	"math/rand"
	"sort"
)

// RandomSupport returns k distinct positions in [0, n), sorted, drawn
// with a fixed seed for reproducibility.
func RandomSupport(n, k int, seed int64) []int {
	if k > n {
		k = n
	}
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[int]bool, k)
	out := make([]int, 0, k)
	for len(out) < k {
		p := rng.Intn(n)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// SparseSpectrum returns a dense spectrum of n bins with exactly k nonzero
// coefficients. Every coefficient has magnitude at least 1.
func SparseSpectrum(n, k int, seed int64) []complex128 {
	out := make([]complex128, n)
	rng := rand.New(rand.NewSource(seed + 1))
	for _, p := range RandomSupport(n, k, seed) {
		out[p] = complex(1+rng.Float64(), rng.Float64()*2-1)
	}
	return out
}

// UnitSupport returns a dense spectrum of n bins that is 1 at the given
// positions and 0 elsewhere.
func UnitSupport(n int, positions ...int) []complex128 {
	out := make([]complex128, n)
	for _, p := range positions {
		if p >= 0 && p < n {
			out[p] = 1
		}
	}
	return out
}

// DiracComb returns a spectrum of n bins with k evenly spaced unit
// coefficients, starting at bin 0.
func DiracComb(n, k int) []complex128 {
	out := make([]complex128, n)
	if k <= 0 {
		return out
	}
	step := n / k
	if step == 0 {
		step = 1
	}
	for i := 0; i < n; i += step {
		out[i] = 1
	}
	return out
}

// Support returns the positions of bins whose magnitude exceeds eps.
func Support(spectrum []complex128, eps float64) []int {
	var out []int
	for i, c := range spectrum {
		if real(c)*real(c)+imag(c)*imag(c) > eps*eps {
			out = append(out, i)
		}
	}
	return out
}
