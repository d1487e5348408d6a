package testutil

import (
	"fmt"
	"math/cmplx"
	"slices"
	"testing"
)

// RequireNear fails t if got and want differ by more than eps.
func RequireNear(t testing.TB, got, want complex128, eps float64) {
	t.Helper()
	if d := cmplx.Abs(got - want); d > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, d, eps)
	}
}

// WorstBin returns the bin where got and want differ most and the size of
// that difference. It returns bin -1 for empty spectra.
func WorstBin(got, want []complex128) (int, float64, error) {
	if len(got) != len(want) {
		return -1, 0, fmt.Errorf("spectra have %d and %d bins", len(got), len(want))
	}
	bin, worst := -1, 0.0
	for i := range got {
		if d := cmplx.Abs(got[i] - want[i]); bin < 0 || d > worst {
			bin, worst = i, d
		}
	}
	return bin, worst, nil
}

// RequireSpectrum fails t unless got is finite, has the same support as
// want above eps, and matches want in every bin within eps.
func RequireSpectrum(t testing.TB, got, want []complex128, eps float64) {
	t.Helper()
	for i, c := range got {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			t.Fatalf("bin %d is not finite: %v", i, c)
		}
	}
	if gs, ws := Support(got, eps), Support(want, eps); !slices.Equal(gs, ws) {
		t.Fatalf("support %v, want %v", gs, ws)
	}
	bin, worst, err := WorstBin(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if worst > eps {
		t.Fatalf("bin %d: got %v, want %v (diff %v > eps %v)", bin, got[bin], want[bin], worst, eps)
	}
}
