package sfft

import (
	"log/slog"
	"math"
	"math/cmplx"
)

// run is the state shared by every pass of one recovery: the counted
// signal, the single index source and the filter cache.
type run struct {
	dom        Domain
	x          *countingSignal
	delta      *IndexSource
	bank       *filterBank
	tol        float64
	factor     float64
	preemptive bool
	log        *slog.Logger
	stats      Stats
}

func newRun(dom Domain, x Signal, cfg Config) *run {
	return &run{
		dom:        dom,
		x:          &countingSignal{Signal: x},
		delta:      NewIndexSource(dom, cfg.Seed),
		bank:       newFilterBank(dom),
		tol:        cfg.Tolerance,
		factor:     cfg.SampleFactor,
		preemptive: cfg.Preemptive,
		log:        cfg.Logger,
	}
}

// sampleCount returns max(round(factor*sparsity*log2(N)), 2).
func (r *run) sampleCount(sparsity int) int {
	n := int(math.Round(r.factor * float64(sparsity) * float64(r.dom.Depth())))
	return max(n, 2)
}

// hasEnergy reports whether the cone carries energy not explained by
// known. It compares the filtered signal with the filtered known spectrum
// at random times; one disagreement is conclusive. A false result means
// the cone is empty up to the test's error probability.
//
// Filtered samples carry the 1/N factor of the inverse transform, so the
// difference is scaled by N and compared in coefficient units.
func (r *run) hasEnergy(known *Table, cone Cone, sparsity int) (bool, error) {
	f, err := r.bank.filter(cone)
	if err != nil {
		return false, err
	}
	r.stats.ZeroTests++

	n := complex(float64(r.dom.size), 0)
	for range r.sampleCount(sparsity) {
		t := r.delta.Next()
		var expected complex128
		known.Each(func(fr Index, c complex128) {
			if cone.Contains(fr) {
				expected += Kernel(fr, t) * c
			}
		})

		if cmplx.Abs(n*f.Apply(r.x, t)-expected) > r.tol {
			return true, nil
		}
	}
	return false, nil
}

// estimate returns the unexplained coefficient of a singleton cone:
// N times the filtered signal at time zero minus the known coefficients
// inside the cone.
func (r *run) estimate(known *Table, cone Cone) (complex128, error) {
	f, err := r.bank.filter(cone)
	if err != nil {
		return 0, err
	}
	var explained complex128
	known.Each(func(fr Index, c complex128) {
		if cone.Contains(fr) {
			explained += c
		}
	})
	filtered := f.Apply(r.x, r.dom.Index(0))
	return complex(float64(r.dom.size), 0)*filtered - explained, nil
}

// ZeroTest runs a single zero test of cone against x with the given
// known spectrum and reports whether unexplained energy was found.
// sparsity sizes the sample count; src supplies the sample times. tol
// bounds the residual per coefficient, independent of the domain size.
func ZeroTest(x Signal, known *Table, cone Cone, sparsity int, src *IndexSource, tol float64) (bool, error) {
	cfg := DefaultConfig()
	cfg.Tolerance = tol
	if err := cfg.validate(); err != nil {
		return false, err
	}
	r := newRun(src.dom, x, cfg)
	r.delta = src
	return r.hasEnergy(known, cone, sparsity)
}
