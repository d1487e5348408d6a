//go:build fastmath

package main

import (
	"math"
	"math/cmplx"

	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10.
const ln10 = 2.30258509299404568401799145468

// magnitudeDB returns 20*log10(|c|) using fast approximation.
func magnitudeDB(c complex128) float64 {
	m := cmplx.Abs(c)
	if m == 0 {
		return math.Inf(-1)
	}
	return 20 * approx.FastLog(m) / ln10
}
