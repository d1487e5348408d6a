package sfft

import "errors"

var (
	// ErrNoSolution is returned when the signal has more energy-carrying
	// frequencies than the declared sparsity allows.
	ErrNoSolution = errors.New("sfft: sparsity bound exceeded, no solution")

	// ErrInvalidDomain is returned for malformed domain descriptors.
	ErrInvalidDomain = errors.New("sfft: invalid domain")

	// ErrInvalidSparsity is returned for negative sparsity bounds.
	ErrInvalidSparsity = errors.New("sfft: sparsity must be >= 0")

	// ErrInvalidRank is returned for ranks below 1.
	ErrInvalidRank = errors.New("sfft: rank must be >= 1")

	// ErrInvalidTolerance is returned for non-positive or non-finite tolerances.
	ErrInvalidTolerance = errors.New("sfft: tolerance must be finite and > 0")

	// ErrInvalidSampleFactor is returned for non-positive or non-finite
	// zero test sample factors.
	ErrInvalidSampleFactor = errors.New("sfft: sample factor must be finite and > 0")

	// ErrLengthMismatch is returned when a sample buffer does not cover the domain.
	ErrLengthMismatch = errors.New("sfft: buffer length does not match domain size")

	// ErrMaxDepth is returned when splitting a singleton node.
	ErrMaxDepth = errors.New("sfft: node is already at maximum depth")

	// ErrNotLeaf is returned when a tree operation requires a live leaf.
	ErrNotLeaf = errors.New("sfft: node is not a live leaf")
)
