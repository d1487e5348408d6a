// Package reference implements the dense multi-dimensional DFT used to
// cross-check sparse recovery. It runs one algo-fft plan along every axis
// (row-column decomposition) and stores points in the same flattened
// order as sfft.Index, axis 0 least significant.
package reference

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrLengthMismatch is returned when the buffer does not hold width^dims points.
var ErrLengthMismatch = errors.New("reference: buffer length does not match width^dims")

// Forward returns the unnormalised forward DFT of signal:
// X[f] = sum_t x[t] * exp(-2*pi*i*(f.t)/width).
func Forward(dims, width int, signal []complex128) ([]complex128, error) {
	return transform(dims, width, signal, false)
}

// Inverse returns the inverse DFT of spectrum, normalised by 1/N:
// x[t] = 1/N * sum_f X[f] * exp(2*pi*i*(f.t)/width).
func Inverse(dims, width int, spectrum []complex128) ([]complex128, error) {
	return transform(dims, width, spectrum, true)
}

func transform(dims, width int, in []complex128, inverse bool) ([]complex128, error) {
	if dims < 1 || width < 1 {
		return nil, fmt.Errorf("reference: invalid shape %d^%d", width, dims)
	}
	n := 1
	for range dims {
		n *= width
	}
	if len(in) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(in), n)
	}

	out := append([]complex128(nil), in...)
	if width == 1 {
		return out, nil
	}

	plan, err := algofft.NewPlan64(width)
	if err != nil {
		return nil, fmt.Errorf("reference: failed to create FFT plan: %w", err)
	}

	line := make([]complex128, width)
	res := make([]complex128, width)
	stride := 1
	for range dims {
		block := stride * width
		for base := 0; base < n; base += block {
			for off := 0; off < stride; off++ {
				start := base + off
				for j := range line {
					line[j] = out[start+j*stride]
				}
				if inverse {
					err = plan.Inverse(res, line)
				} else {
					err = plan.Forward(res, line)
				}
				if err != nil {
					return nil, fmt.Errorf("reference: FFT failed: %w", err)
				}
				for j, v := range res {
					out[start+j*stride] = v
				}
			}
		}
		stride = block
	}
	return out, nil
}
