package sfft

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Recoverer recovers sparse spectra over a fixed domain. It holds no
// per-run state and may be used from several goroutines at once.
type Recoverer struct {
	dom Domain
	cfg Config
	tel *telemetry
}

// New returns a Recoverer for dom configured by opts.
func New(dom Domain, opts ...Option) (*Recoverer, error) {
	if !dom.Valid() {
		return nil, fmt.Errorf("%w: domain must hold more than one point", ErrInvalidDomain)
	}
	cfg := ApplyOptions(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	tel, err := newTelemetry(cfg.TracerProvider, cfg.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("sfft: failed to create instruments: %w", err)
	}
	return &Recoverer{dom: dom, cfg: cfg, tel: tel}, nil
}

// Domain returns the recoverer's domain.
func (r *Recoverer) Domain() Domain { return r.dom }

// Config returns the effective configuration.
func (r *Recoverer) Config() Config { return r.cfg }

// Recover returns the spectrum of x, assuming at most sparsity nonzero
// coefficients. rank 1 runs the single-level search; higher ranks nest
// rank levels with a budget shrinking by sparsity^(1/rank) per level.
//
// If the signal turns out to have more energy-carrying frequencies than
// sparsity, Recover returns ErrNoSolution rather than a partial table.
// ctx only parents the telemetry; a run is not interruptible.
func (r *Recoverer) Recover(ctx context.Context, x Signal, sparsity, rank int) (*Table, error) {
	t, _, err := r.RecoverStats(ctx, x, sparsity, rank)
	return t, err
}

// RecoverStats is like Recover and also reports the work done.
func (r *Recoverer) RecoverStats(ctx context.Context, x Signal, sparsity, rank int) (*Table, Stats, error) {
	if sparsity < 0 {
		return nil, Stats{}, fmt.Errorf("%w: %d", ErrInvalidSparsity, sparsity)
	}
	if rank < 1 {
		return nil, Stats{}, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if sparsity == 0 {
		return NewTable(), Stats{}, nil
	}

	ctx, span := r.tel.start(ctx, r.dom, sparsity, rank)
	start := time.Now()

	run := newRun(r.dom, x, r.cfg)
	var (
		found *Table
		ok    bool
		err   error
	)
	if rank == 1 {
		found, ok, err = run.recoverLevel(Whole(), NewTable(), sparsity)
	} else {
		step := math.Pow(float64(sparsity), 1/float64(rank))
		found, ok, err = run.restore(Whole(), NewTable(), sparsity, step, rank)
	}
	if err == nil && !ok {
		err = fmt.Errorf("%w: sparsity %d over %v at rank %d", ErrNoSolution, sparsity, r.dom, rank)
		r.cfg.Logger.Warn("sfft: recovery failed",
			"domain", r.dom.String(),
			"sparsity", sparsity,
			"rank", rank,
			"samples", run.x.n,
		)
	}
	run.stats.Samples = run.x.n

	r.tel.finish(ctx, span, rank, run.stats, found.Len(), time.Since(start), err)
	if err != nil {
		return nil, run.stats, err
	}
	r.cfg.Logger.Debug("sfft: recovery finished",
		"domain", r.dom.String(),
		"sparsity", sparsity,
		"rank", rank,
		"coefficients", found.Len(),
		"samples", run.stats.Samples,
		"zero_tests", run.stats.ZeroTests,
	)
	return found, run.stats, nil
}

// MustRecover is like Recover but treats a violated sparsity bound as a
// broken precondition and panics.
func (r *Recoverer) MustRecover(ctx context.Context, x Signal, sparsity, rank int) *Table {
	t, err := r.Recover(ctx, x, sparsity, rank)
	if err != nil {
		panic(err)
	}
	return t
}

// Recover is a convenience wrapper around New and Recoverer.Recover.
func Recover(x Signal, dom Domain, sparsity, rank int, opts ...Option) (*Table, error) {
	r, err := New(dom, opts...)
	if err != nil {
		return nil, err
	}
	return r.Recover(context.Background(), x, sparsity, rank)
}

// MustRecover recovers the spectrum of x and panics if the arguments are
// invalid or the sparsity bound does not hold. The caller is expected to
// know a correct upper bound for the number of nonzero coefficients.
func MustRecover(x Signal, dom Domain, sparsity, rank int, opts ...Option) *Table {
	t, err := Recover(x, dom, sparsity, rank, opts...)
	if err != nil {
		panic(err)
	}
	return t
}
