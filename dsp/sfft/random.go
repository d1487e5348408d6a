package sfft

import "math/rand"

// IndexSource draws uniformly distributed points of a domain from a seeded
// generator. One source is created per recovery run and passed explicitly,
// so runs never share random state.
type IndexSource struct {
	dom Domain
	rng *rand.Rand
}

// NewIndexSource returns a source over dom seeded with seed. It panics
// with ErrInvalidDomain if dom was not built by NewDomain.
func NewIndexSource(dom Domain, seed int64) *IndexSource {
	dom.mustBeValid()
	return &IndexSource{
		dom: dom,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next random point.
func (s *IndexSource) Next() Index {
	return Index{dom: s.dom, flat: s.rng.Int63n(s.dom.size)}
}
