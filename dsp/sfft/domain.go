package sfft

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// maxDepth bounds Dims*log2(Width) so that labels fit in a uint64 and
// flattened indices fit in an int64.
const maxDepth = 62

// Domain describes a dims-dimensional signal with Width points per axis.
//
// Domain is a small comparable value; two indices are only compatible when
// their domains compare equal.
type Domain struct {
	dims  int
	width int
	bits  int // log2(width)
	size  int64
}

// NewDomain validates and returns a domain of dims axes of width points.
// Width must be a power of two >= 2.
func NewDomain(dims, width int) (Domain, error) {
	if dims < 1 {
		return Domain{}, fmt.Errorf("%w: dims must be >= 1: %d", ErrInvalidDomain, dims)
	}
	if width < 2 || width&(width-1) != 0 {
		return Domain{}, fmt.Errorf("%w: width must be a power of two >= 2: %d", ErrInvalidDomain, width)
	}
	b := bits.TrailingZeros(uint(width))
	if dims*b > maxDepth {
		return Domain{}, fmt.Errorf("%w: %d^%d points exceed 2^%d", ErrInvalidDomain, width, dims, maxDepth)
	}
	return Domain{
		dims:  dims,
		width: width,
		bits:  b,
		size:  int64(1) << (dims * b),
	}, nil
}

// MustDomain is like NewDomain but panics on invalid arguments.
func MustDomain(dims, width int) Domain {
	d, err := NewDomain(dims, width)
	if err != nil {
		panic(err)
	}
	return d
}

// Dims returns the number of axes.
func (d Domain) Dims() int { return d.dims }

// Width returns the number of points per axis.
func (d Domain) Width() int { return d.width }

// Size returns the total number of points, Width^Dims.
func (d Domain) Size() int64 { return d.size }

// Depth returns the depth of a full splitting tree, Dims*log2(Width).
func (d Domain) Depth() int { return d.dims * d.bits }

// Valid reports whether d was built by NewDomain.
func (d Domain) Valid() bool { return d.size > 1 }

func (d Domain) String() string {
	return fmt.Sprintf("%d^%d", d.width, d.dims)
}

// Index returns the point with the given flattened position. Positions
// outside [0, Size) wrap around.
func (d Domain) Index(flat int64) Index {
	d.mustBeValid()
	flat %= d.size
	if flat < 0 {
		flat += d.size
	}
	return Index{dom: d, flat: flat}
}

// At returns the point with the given per-axis coordinates. Axis 0 is the
// least significant one in the flattened position. Missing trailing
// coordinates are zero; every coordinate wraps modulo Width.
func (d Domain) At(coords ...int64) Index {
	d.mustBeValid()
	if len(coords) > d.dims {
		panic(fmt.Sprintf("sfft: %d coordinates for %d-dimensional domain", len(coords), d.dims))
	}
	var flat int64
	for axis := len(coords) - 1; axis >= 0; axis-- {
		flat = flat<<d.bits | d.wrap(coords[axis])
	}
	return Index{dom: d, flat: flat}
}

func (d Domain) wrap(c int64) int64 {
	w := int64(d.width)
	c %= w
	if c < 0 {
		c += w
	}
	return c
}

// mustBeValid panics with ErrInvalidDomain for domains not built by
// NewDomain, such as the zero value.
func (d Domain) mustBeValid() {
	if !d.Valid() {
		panic(fmt.Errorf("%w: %v was not built by NewDomain", ErrInvalidDomain, d))
	}
}

// Index is a point of a Domain, used both as a time offset and as a
// frequency. Index values are comparable and may be used as map keys.
type Index struct {
	dom  Domain
	flat int64
}

// Domain returns the domain the index belongs to.
func (i Index) Domain() Domain { return i.dom }

// Flat returns the flattened position in [0, Size).
func (i Index) Flat() int64 { return i.flat }

// Coord returns the coordinate along axis.
func (i Index) Coord(axis int) int64 {
	return (i.flat >> (axis * i.dom.bits)) & int64(i.dom.width-1)
}

// Coords returns all coordinates, axis 0 first.
func (i Index) Coords() []int64 {
	out := make([]int64, i.dom.dims)
	for axis := range out {
		out[axis] = i.Coord(axis)
	}
	return out
}

// Add returns i+j component-wise modulo Width.
func (i Index) Add(j Index) Index {
	i.mustMatch(j)
	return i.combine(j, func(a, b int64) int64 { return a + b })
}

// Sub returns i-j component-wise modulo Width.
func (i Index) Sub(j Index) Index {
	i.mustMatch(j)
	return i.combine(j, func(a, b int64) int64 { return a - b })
}

// Neg returns -i component-wise modulo Width.
func (i Index) Neg() Index {
	return i.dom.Index(0).Sub(i)
}

// Scale returns k*i component-wise modulo Width.
func (i Index) Scale(k int64) Index {
	return i.combine(i, func(a, _ int64) int64 { return a * k })
}

// Dot returns sum_d i_d*j_d modulo Width, the phase numerator of the
// Fourier kernel.
func (i Index) Dot(j Index) int64 {
	i.mustMatch(j)
	mask := int64(i.dom.width - 1)
	var acc int64
	for axis := 0; axis < i.dom.dims; axis++ {
		acc += i.Coord(axis) * j.Coord(axis)
		acc &= mask
	}
	return acc
}

// Less orders indices by flattened position.
func (i Index) Less(j Index) bool {
	i.mustMatch(j)
	return i.flat < j.flat
}

func (i Index) String() string {
	if i.dom.dims == 1 {
		return strconv.FormatInt(i.flat, 10)
	}
	parts := make([]string, i.dom.dims)
	for axis := range parts {
		parts[axis] = strconv.FormatInt(i.Coord(axis), 10)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func (i Index) combine(j Index, op func(a, b int64) int64) Index {
	mask := int64(i.dom.width - 1)
	var flat int64
	for axis := i.dom.dims - 1; axis >= 0; axis-- {
		flat = flat<<i.dom.bits | (op(i.Coord(axis), j.Coord(axis)) & mask)
	}
	return Index{dom: i.dom, flat: flat}
}

func (i Index) mustMatch(j Index) {
	if i.dom != j.dom {
		panic(fmt.Sprintf("sfft: index from domain %v used with domain %v", j.dom, i.dom))
	}
}
