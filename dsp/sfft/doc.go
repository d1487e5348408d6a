// Package sfft recovers sparse discrete Fourier spectra from time samples.
//
// A signal over a Domain of N = Width^Dims points whose spectrum has at
// most k nonzero coefficients is recovered without evaluating all N
// coefficients. Recovery samples the signal adaptively and runs a
// randomized binary search over a Tree that splits the frequency domain
// into nested cones. For every cone a Filter measures the energy it holds,
// a zero test decides whether that energy is already explained, and
// singleton cones are estimated directly and peeled from later tests.
//
// Signals follow the inverse transform convention
//
//	x(t) = 1/N * sum_f c_f * exp(2*pi*i*(f.t)/Width)
//
// so a Table returned by Recover holds the forward DFT coefficients c_f.
//
// Rank 1 runs the single-level search with budget k. Higher ranks nest the
// search, giving each of rank levels a budget of roughly k^((rank-1)/rank)
// and confirming every nested result with a fresh zero test.
//
// The result is probabilistic: a zero test may wrongly declare a cone
// empty with a probability that drops with the sample count. A violated
// sparsity bound, however, is always reported as ErrNoSolution instead of
// a truncated table.
package sfft
