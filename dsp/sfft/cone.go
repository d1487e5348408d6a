package sfft

// Cone is a set of frequencies sharing a prefix of interleaved bits.
//
// Tree level l decides interleaved bit l-1. Interleaved bit b belongs to
// axis b mod Dims and is coordinate bit b / Dims of that axis, so
// consecutive levels visit the axes round robin, low bits first.
//
// Label holds the bits of the full path from the root; Mask selects the
// bits the cone actually constrains. Levels whose sibling has already been
// discarded are left out of Mask.
type Cone struct {
	Level int
	Label uint64
	Mask  uint64
}

// Whole returns the cone covering every frequency.
func Whole() Cone { return Cone{} }

// Contains reports whether f lies in the cone.
func (c Cone) Contains(f Index) bool {
	return f.dom.interleave(f)&c.Mask == c.Label&c.Mask
}

// axisMask returns the constrained bits and their values for one axis,
// expressed as coordinate bits.
func (c Cone) axisMask(dom Domain, axis int) (mask, value uint64) {
	for b := axis; b < c.Level; b += dom.dims {
		if c.Mask>>b&1 == 0 {
			continue
		}
		bit := uint64(1) << (b / dom.dims)
		mask |= bit
		if c.Label>>b&1 == 1 {
			value |= bit
		}
	}
	return mask, value
}

// interleave maps a point to its interleaved bit string.
func (d Domain) interleave(i Index) uint64 {
	var out uint64
	for axis := 0; axis < d.dims; axis++ {
		c := uint64(i.Coord(axis))
		for k := 0; k < d.bits; k++ {
			out |= (c >> k & 1) << (k*d.dims + axis)
		}
	}
	return out
}

// deinterleave is the inverse of interleave.
func (d Domain) deinterleave(label uint64) Index {
	coords := make([]int64, d.dims)
	for b := 0; b < d.Depth(); b++ {
		coords[b%d.dims] |= int64(label>>b&1) << (b / d.dims)
	}
	return d.At(coords...)
}
