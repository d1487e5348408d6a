package sfft

import (
	"fmt"
	"math"
	"math/bits"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// tapFloor drops taps that are zero up to FFT rounding.
const tapFloor = 1e-12

// Kernel returns exp(2*pi*i*(f.t)/Width), the synthesis kernel of the
// inverse transform: x(t) = 1/N * sum_f c_f * Kernel(f, t).
func Kernel(f, t Index) complex128 {
	phase := 2 * math.Pi * float64(f.Dot(t)) / float64(f.dom.width)
	s, c := math.Sincos(phase)
	return complex(c, s)
}

// Tap is one weight of a filter's time-domain kernel.
type Tap struct {
	Offset Index
	Weight complex128
}

// Filter is the band-pass filter of a cone: an exact 0/1 indicator in
// frequency and the finite set of taps realizing it as a circular
// convolution in time.
type Filter struct {
	dom  Domain
	cone Cone
	taps []Tap
	re   []float64
	im   []float64
}

// NewFilter builds the filter of cone over dom.
func NewFilter(dom Domain, cone Cone) (*Filter, error) {
	return newFilterBank(dom).filter(cone)
}

// Cone returns the cone the filter passes.
func (f *Filter) Cone() Cone { return f.cone }

// Contains reports whether frequency fr passes the filter.
func (f *Filter) Contains(fr Index) bool { return f.cone.Contains(fr) }

// Frequency returns the frequency response at fr, 1 inside the cone and
// 0 outside.
func (f *Filter) Frequency(fr Index) complex128 {
	if f.cone.Contains(fr) {
		return 1
	}
	return 0
}

// Taps returns the time-domain taps. The slice must not be modified.
func (f *Filter) Taps() []Tap { return f.taps }

// Len returns the number of taps.
func (f *Filter) Len() int { return len(f.taps) }

// Apply returns the filtered signal at t: sum_k w_k * x(t - offset_k).
func (f *Filter) Apply(x Signal, t Index) complex128 {
	n := len(f.taps)
	xr, xi, prod, buf := getScratch(n)
	defer putScratch(buf)

	for k, tap := range f.taps {
		v := x.At(t.Sub(tap.Offset))
		xr[k] = real(v)
		xi[k] = imag(v)
	}

	// (wr + i wi)(xr + i xi)
	vecmath.MulBlock(prod, f.re, xr)
	rr := sum(prod)
	vecmath.MulBlock(prod, f.im, xi)
	ii := sum(prod)
	vecmath.MulBlock(prod, f.re, xi)
	ri := sum(prod)
	vecmath.MulBlock(prod, f.im, xr)
	ir := sum(prod)

	return complex(rr-ii, ri+ir)
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (xr, xi, prod []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n : need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

type axisKey struct {
	mask, value uint64
}

type axisTap struct {
	offset int64
	weight complex128
}

type coneKey struct {
	mask, bits uint64
}

// filterBank builds filters for one recovery run and caches FFT plans,
// per-axis taps and whole filters.
type filterBank struct {
	dom     Domain
	plans   map[int]*algofft.Plan[complex128]
	axes    map[axisKey][]axisTap
	filters map[coneKey]*Filter
}

func newFilterBank(dom Domain) *filterBank {
	return &filterBank{
		dom:     dom,
		plans:   make(map[int]*algofft.Plan[complex128]),
		axes:    make(map[axisKey][]axisTap),
		filters: make(map[coneKey]*Filter),
	}
}

func (b *filterBank) filter(c Cone) (*Filter, error) {
	key := coneKey{mask: c.Mask, bits: c.Label & c.Mask}
	if f, ok := b.filters[key]; ok {
		return f, nil
	}

	taps := []Tap{{Offset: b.dom.Index(0), Weight: 1}}
	for axis := 0; axis < b.dom.dims; axis++ {
		mask, value := c.axisMask(b.dom, axis)
		at, err := b.axisTaps(mask, value)
		if err != nil {
			return nil, err
		}
		shift := axis * b.dom.bits
		next := make([]Tap, 0, len(taps)*len(at))
		for _, tap := range taps {
			for _, a := range at {
				next = append(next, Tap{
					Offset: Index{dom: b.dom, flat: tap.Offset.flat | a.offset<<shift},
					Weight: tap.Weight * a.weight,
				})
			}
		}
		taps = next
	}

	f := &Filter{
		dom:  b.dom,
		cone: c,
		taps: taps,
		re:   make([]float64, len(taps)),
		im:   make([]float64, len(taps)),
	}
	for k, tap := range taps {
		f.re[k] = real(tap.Weight)
		f.im[k] = imag(tap.Weight)
	}
	b.filters[key] = f
	return f, nil
}

// axisTaps returns the one-dimensional taps of the indicator
// g(s) = [s & mask == value]. Since g depends only on s mod 2^L, with L
// the highest constrained bit plus one, its inverse transform is supported
// on multiples of Width/2^L and equals the size-2^L inverse DFT of g.
func (b *filterBank) axisTaps(mask, value uint64) ([]axisTap, error) {
	key := axisKey{mask: mask, value: value}
	if at, ok := b.axes[key]; ok {
		return at, nil
	}

	l := bits.Len64(mask)
	if l == 0 {
		at := []axisTap{{offset: 0, weight: 1}}
		b.axes[key] = at
		return at, nil
	}

	n := 1 << l
	plan, err := b.plan(n)
	if err != nil {
		return nil, err
	}
	g := make([]complex128, n)
	for s := range g {
		if uint64(s)&mask == value {
			g[s] = 1
		}
	}
	w := make([]complex128, n)
	if err := plan.Inverse(w, g); err != nil {
		return nil, fmt.Errorf("sfft: inverse FFT of size %d failed: %w", n, err)
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for j, v := range w {
		re[j] = real(v)
		im[j] = imag(v)
	}
	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)

	stride := int64(b.dom.width / n)
	at := make([]axisTap, 0, n)
	for j, m := range mag {
		if m <= tapFloor {
			continue
		}
		at = append(at, axisTap{offset: int64(j) * stride, weight: w[j]})
	}
	b.axes[key] = at
	return at, nil
}

func (b *filterBank) plan(n int) (*algofft.Plan[complex128], error) {
	if p, ok := b.plans[n]; ok {
		return p, nil
	}
	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("sfft: failed to create FFT plan of size %d: %w", n, err)
	}
	b.plans[n] = p
	return p, nil
}
