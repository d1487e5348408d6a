package sfft

import "fmt"

// Signal is a time-domain signal that can be evaluated at any point of its
// domain. Implementations must be pure: repeated calls with the same index
// return the same value.
type Signal interface {
	At(t Index) complex128
}

// SignalFunc adapts an ordinary function to the Signal interface.
type SignalFunc func(t Index) complex128

// At calls f(t).
func (f SignalFunc) At(t Index) complex128 { return f(t) }

// DataSignal adapts a dense sample buffer to the Signal interface. Samples
// are stored in flattened order (see Index.Flat).
type DataSignal struct {
	dom    Domain
	values []complex128
}

// NewDataSignal wraps values, which must hold exactly dom.Size() samples.
// The slice is not copied.
func NewDataSignal(dom Domain, values []complex128) (*DataSignal, error) {
	if !dom.Valid() {
		return nil, ErrInvalidDomain
	}
	if int64(len(values)) != dom.Size() {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrLengthMismatch, len(values), dom.Size())
	}
	return &DataSignal{dom: dom, values: values}, nil
}

// At returns the sample at t. Indices are always reduced modulo the
// domain, so negative offsets wrap around.
func (s *DataSignal) At(t Index) complex128 {
	if t.dom != s.dom {
		panic(fmt.Sprintf("sfft: signal over %v sampled with index over %v", s.dom, t.dom))
	}
	return s.values[t.flat]
}

// Domain returns the signal domain.
func (s *DataSignal) Domain() Domain { return s.dom }

// Len returns the number of samples.
func (s *DataSignal) Len() int { return len(s.values) }

// countingSignal counts evaluations for run statistics.
type countingSignal struct {
	Signal
	n int64
}

func (c *countingSignal) At(t Index) complex128 {
	c.n++
	return c.Signal.At(t)
}
