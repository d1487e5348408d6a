package sfft

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Table is a sparse spectrum: a mapping from frequency to complex
// coefficient. Missing frequencies have coefficient zero.
//
// Iteration follows insertion order, which keeps every computation that
// folds over a table reproducible.
type Table struct {
	pos  map[Index]int
	keys []Index
	vals []complex128
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{pos: make(map[Index]int)}
}

// Len returns the number of stored frequencies.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Get returns the coefficient of f and whether f is stored.
func (t *Table) Get(f Index) (complex128, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.pos[f]
	if !ok {
		return 0, false
	}
	return t.vals[i], true
}

// Set stores c as the coefficient of f.
func (t *Table) Set(f Index, c complex128) {
	if i, ok := t.pos[f]; ok {
		t.vals[i] = c
		return
	}
	if t.pos == nil {
		t.pos = make(map[Index]int)
	}
	t.pos[f] = len(t.keys)
	t.keys = append(t.keys, f)
	t.vals = append(t.vals, c)
}

// Add adds c to the coefficient of f.
func (t *Table) Add(f Index, c complex128) {
	if i, ok := t.pos[f]; ok {
		t.vals[i] += c
		return
	}
	t.Set(f, c)
}

// Each calls fn for every entry in insertion order.
func (t *Table) Each(fn func(f Index, c complex128)) {
	if t == nil {
		return
	}
	for i, k := range t.keys {
		fn(k, t.vals[i])
	}
}

// Keys returns the stored frequencies sorted by flattened position.
func (t *Table) Keys() []Index {
	if t == nil {
		return nil
	}
	out := append([]Index(nil), t.keys...)
	sort.Slice(out, func(i, j int) bool { return out[i].flat < out[j].flat })
	return out
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	out := &Table{
		pos:  make(map[Index]int, t.Len()),
		keys: make([]Index, 0, t.Len()),
		vals: make([]complex128, 0, t.Len()),
	}
	t.Each(out.Set)
	return out
}

// MergeInto adds every entry of src to t.
func (t *Table) MergeInto(src *Table) {
	src.Each(t.Add)
}

// Merge returns a new table holding a and b, summing coefficients of
// frequencies present in both.
func Merge(a, b *Table) *Table {
	out := a.Clone()
	out.MergeInto(b)
	return out
}

// Energy returns the sum of squared coefficient magnitudes.
func (t *Table) Energy() float64 {
	n := t.Len()
	if n == 0 {
		return 0
	}
	re := make([]float64, n)
	im := make([]float64, n)
	for i, v := range t.vals {
		re[i] = real(v)
		im[i] = imag(v)
	}
	pow := make([]float64, n)
	vecmath.Power(pow, re, im)
	var sum float64
	for _, p := range pow {
		sum += p
	}
	return sum
}

// Equal reports whether t and o describe the same spectrum within tol.
// Entries whose magnitude is within tol count as absent.
func (t *Table) Equal(o *Table, tol float64) bool {
	ok := true
	t.Each(func(f Index, c complex128) {
		oc, _ := o.Get(f)
		if cmplx.Abs(c-oc) > tol {
			ok = false
		}
	})
	o.Each(func(f Index, c complex128) {
		if _, in := t.Get(f); !in && cmplx.Abs(c) > tol {
			ok = false
		}
	})
	return ok
}

// Dense expands the table to a full spectrum of dom.Size() bins.
func (t *Table) Dense(dom Domain) []complex128 {
	out := make([]complex128, dom.Size())
	t.Each(func(f Index, c complex128) {
		out[f.flat] += c
	})
	return out
}

func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range t.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		c, _ := t.Get(k)
		fmt.Fprintf(&sb, "%v: %v", k, c)
	}
	sb.WriteByte('}')
	return sb.String()
}
