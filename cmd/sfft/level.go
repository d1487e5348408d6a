//go:build !fastmath

package main

import (
	"math"
	"math/cmplx"
)

// magnitudeDB returns 20*log10(|c|) using standard library math.
func magnitudeDB(c complex128) float64 {
	return 20 * math.Log10(cmplx.Abs(c))
}
