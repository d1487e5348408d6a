package sfft

import (
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-sfft/internal/reference"
	"github.com/cwbudde/algo-sfft/internal/testutil"
)

func treeFilter(t *testing.T, tree *Tree, id NodeID) *Filter {
	t.Helper()
	f, err := NewFilter(tree.dom, tree.Cone(id))
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	return f
}

func requireResponse(t *testing.T, f *Filter, freq int64, want complex128) {
	t.Helper()
	got := f.Frequency(f.dom.Index(freq))
	if got != want {
		t.Fatalf("Frequency(%d) = %v, want %v", freq, got, want)
	}
}

func TestFilterFrequencyBothChildren(t *testing.T) {
	tree := NewTree(MustDomain(1, 2))
	a, b := mustSplit(t, tree, tree.Root())

	fa := treeFilter(t, tree, a)
	requireResponse(t, fa, 1, 1)
	requireResponse(t, fa, 0, 0)

	fb := treeFilter(t, tree, b)
	requireResponse(t, fb, 1, 0)
	requireResponse(t, fb, 0, 1)
}

func TestFilterFrequencyLoneChild(t *testing.T) {
	{
		tree := NewTree(MustDomain(1, 2))
		a, b := mustSplit(t, tree, tree.Root())
		mustRemove(t, tree, b)
		requireResponse(t, treeFilter(t, tree, a), 1, 1)
	}
	{
		tree := NewTree(MustDomain(1, 2))
		a, b := mustSplit(t, tree, tree.Root())
		mustRemove(t, tree, a)
		requireResponse(t, treeFilter(t, tree, b), 0, 1)
	}
}

func TestFilterFrequencyParity(t *testing.T) {
	tree := NewTree(MustDomain(1, 4))
	a, b := mustSplit(t, tree, tree.Root())

	fa := treeFilter(t, tree, a)
	requireResponse(t, fa, 1, 1)
	requireResponse(t, fa, 3, 1)
	requireResponse(t, fa, 0, 0)
	requireResponse(t, fa, 2, 0)

	fb := treeFilter(t, tree, b)
	requireResponse(t, fb, 1, 0)
	requireResponse(t, fb, 3, 0)
	requireResponse(t, fb, 0, 1)
	requireResponse(t, fb, 2, 1)
}

func TestFilterFrequencyWidenedGrandchildren(t *testing.T) {
	tree := NewTree(MustDomain(1, 4))
	a, b := mustSplit(t, tree, tree.Root())
	a1, a2 := mustSplit(t, tree, a)
	mustRemove(t, tree, a2)
	b1, b2 := mustSplit(t, tree, b)
	mustRemove(t, tree, b1)

	fa := treeFilter(t, tree, a1)
	requireResponse(t, fa, 3, 1)
	requireResponse(t, fa, 0, 0)

	fb := treeFilter(t, tree, b2)
	requireResponse(t, fb, 3, 0)
	requireResponse(t, fb, 0, 1)
}

func TestFilterFrequencyUpperBit(t *testing.T) {
	tree := NewTree(MustDomain(1, 4))
	a, b := mustSplit(t, tree, tree.Root())
	mustRemove(t, tree, b)
	a1, a2 := mustSplit(t, tree, a)

	fa := treeFilter(t, tree, a1)
	requireResponse(t, fa, 3, 1)
	requireResponse(t, fa, 1, 0)

	fb := treeFilter(t, tree, a2)
	requireResponse(t, fb, 3, 0)
	requireResponse(t, fb, 1, 1)
}

func TestFilterTapsIdentity(t *testing.T) {
	tree := NewTree(MustDomain(1, 2))
	a, b := mustSplit(t, tree, tree.Root())
	mustRemove(t, tree, b)

	f := treeFilter(t, tree, a)
	if f.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.Len())
	}
	tap := f.Taps()[0]
	if tap.Offset.Flat() != 0 || tap.Weight != 1 {
		t.Fatalf("tap = %+v, want offset 0 weight 1", tap)
	}
}

func TestFilterTapsHalfBand(t *testing.T) {
	tree := NewTree(MustDomain(1, 2))
	a, _ := mustSplit(t, tree, tree.Root())

	f := treeFilter(t, tree, a)
	taps := f.Taps()
	if len(taps) != 2 {
		t.Fatalf("taps = %+v, want 2", taps)
	}
	want := map[int64]complex128{0: 0.5, 1: -0.5}
	for _, tap := range taps {
		testutil.RequireNear(t, tap.Weight, want[tap.Offset.Flat()], 1e-12)
	}
}

func TestFilterTapsAreStrided(t *testing.T) {
	tree := NewTree(MustDomain(1, 4))
	a, _ := mustSplit(t, tree, tree.Root())

	f := treeFilter(t, tree, a)
	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Len())
	}
	for _, tap := range f.Taps() {
		if off := tap.Offset.Flat(); off != 0 && off != 2 {
			t.Fatalf("unexpected tap offset %d", off)
		}
	}
}

func TestKernelConvention(t *testing.T) {
	d := MustDomain(1, 4)
	testutil.RequireNear(t, Kernel(d.Index(1), d.Index(1)), 1i, 1e-15)
	testutil.RequireNear(t, Kernel(d.Index(3), d.Index(1)), -1i, 1e-15)
	testutil.RequireNear(t, Kernel(d.Index(0), d.Index(3)), 1, 1e-15)
}

func TestFilterApplyMatchesSpectrum(t *testing.T) {
	tests := []struct {
		name        string
		dims, width int
		cones       []Cone
	}{
		{
			name: "1d", dims: 1, width: 32,
			cones: []Cone{
				{Level: 1, Label: 1, Mask: 0b1},
				{Level: 3, Label: 0b101, Mask: 0b101},
				{Level: 5, Label: 0b10110, Mask: 0b11111},
				{Level: 4, Label: 0b1000, Mask: 0b1000},
			},
		},
		{
			name: "2d", dims: 2, width: 8,
			cones: []Cone{
				{Level: 2, Label: 0b10, Mask: 0b11},
				{Level: 3, Label: 0b100, Mask: 0b110},
				{Level: 6, Label: 0b011010, Mask: 0b111111},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MustDomain(tt.dims, tt.width)
			spec := testutil.SparseSpectrum(int(d.Size()), 12, 5)
			values, err := reference.Inverse(tt.dims, tt.width, spec)
			if err != nil {
				t.Fatalf("Inverse: %v", err)
			}
			x, err := NewDataSignal(d, values)
			if err != nil {
				t.Fatalf("NewDataSignal: %v", err)
			}

			for _, c := range tt.cones {
				f, err := NewFilter(d, c)
				if err != nil {
					t.Fatalf("NewFilter(%+v): %v", c, err)
				}
				src := NewIndexSource(d, 9)
				for range 8 {
					tm := src.Next()
					var want complex128
					for flat, coef := range spec {
						fr := d.Index(int64(flat))
						if c.Contains(fr) {
							want += coef * Kernel(fr, tm)
						}
					}
					want /= complex(float64(d.Size()), 0)
					if got := f.Apply(x, tm); cmplx.Abs(got-want) > 1e-9 {
						t.Fatalf("cone %+v at %v: Apply = %v, want %v", c, tm, got, want)
					}
				}
			}
		})
	}
}

func TestFilterBankCachesByEffectiveBits(t *testing.T) {
	d := MustDomain(1, 16)
	bank := newFilterBank(d)
	f1, err := bank.filter(Cone{Level: 3, Label: 0b111, Mask: 0b001})
	if err != nil {
		t.Fatal(err)
	}
	f2, err := bank.filter(Cone{Level: 4, Label: 0b1011, Mask: 0b001})
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 {
		t.Fatal("cones with the same constrained bits built separate filters")
	}
}
