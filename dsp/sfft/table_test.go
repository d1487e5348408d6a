package sfft

import (
	"math"
	"testing"
)

func TestTableInsertionOrder(t *testing.T) {
	d := MustDomain(1, 16)
	tab := NewTable()
	tab.Set(d.Index(9), 1)
	tab.Set(d.Index(2), 2)
	tab.Add(d.Index(9), 1i)
	tab.Add(d.Index(5), 3)

	var order []int64
	tab.Each(func(f Index, _ complex128) {
		order = append(order, f.Flat())
	})
	want := []int64{9, 2, 5}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Each order = %v, want %v", order, want)
		}
	}

	keys := tab.Keys()
	if keys[0].Flat() != 2 || keys[1].Flat() != 5 || keys[2].Flat() != 9 {
		t.Fatalf("Keys = %v, want sorted", keys)
	}

	if c, ok := tab.Get(d.Index(9)); !ok || c != 1+1i {
		t.Fatalf("Get(9) = %v, %v", c, ok)
	}
	if _, ok := tab.Get(d.Index(0)); ok {
		t.Fatal("Get(0) reported a missing entry")
	}
}

func TestTableZeroValueUsable(t *testing.T) {
	var tab Table
	tab.Add(MustDomain(1, 4).Index(1), 2)
	if tab.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tab.Len())
	}

	var nilTab *Table
	if nilTab.Len() != 0 {
		t.Fatal("nil table not empty")
	}
	if nilTab.Clone().Len() != 0 {
		t.Fatal("clone of nil table not empty")
	}
}

func TestMergeSumsOverlap(t *testing.T) {
	d := MustDomain(1, 8)
	a := NewTable()
	a.Set(d.Index(1), 1)
	a.Set(d.Index(2), 2)
	b := NewTable()
	b.Set(d.Index(2), -2)
	b.Set(d.Index(3), 3)

	m := Merge(a, b)
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}
	if c, _ := m.Get(d.Index(2)); c != 0 {
		t.Fatalf("merged[2] = %v, want 0", c)
	}
	if a.Len() != 2 {
		t.Fatal("Merge modified its input")
	}

	want := NewTable()
	want.Set(d.Index(3), 3)
	want.Set(d.Index(1), 1)
	if !m.Equal(want, 1e-12) {
		t.Fatalf("Merge = %v, want %v", m, want)
	}
}

func TestTableEqual(t *testing.T) {
	d := MustDomain(1, 8)
	a := NewTable()
	a.Set(d.Index(1), 1)
	b := NewTable()
	b.Set(d.Index(1), 1+1e-9)

	if !a.Equal(b, 1e-6) {
		t.Fatal("tables within tolerance reported different")
	}
	b.Set(d.Index(4), 0.5)
	if a.Equal(b, 1e-6) || b.Equal(a, 1e-6) {
		t.Fatal("extra entry ignored")
	}
}

func TestTableEnergyAndDense(t *testing.T) {
	d := MustDomain(1, 4)
	tab := NewTable()
	tab.Set(d.Index(1), 3+4i)
	tab.Set(d.Index(3), -1)

	if e := tab.Energy(); math.Abs(e-26) > 1e-12 {
		t.Fatalf("Energy = %v, want 26", e)
	}
	dense := tab.Dense(d)
	want := []complex128{0, 3 + 4i, 0, -1}
	for i := range want {
		if dense[i] != want[i] {
			t.Fatalf("Dense = %v, want %v", dense, want)
		}
	}
	if s := tab.String(); s != "{1: (3+4i), 3: (-1+0i)}" {
		t.Fatalf("String = %q", s)
	}
}
