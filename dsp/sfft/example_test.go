package sfft_test

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-sfft/dsp/sfft"
)

func ExampleRecover() {
	d := sfft.MustDomain(1, 64)
	// x(t) = (2*e^(2*pi*i*5t/64) - e^(2*pi*i*40t/64)) / 64
	x := sfft.SignalFunc(func(t sfft.Index) complex128 {
		a := 2 * sfft.Kernel(d.Index(5), t)
		b := -sfft.Kernel(d.Index(40), t)
		return (a + b) / 64
	})

	spectrum, err := sfft.Recover(x, d, 4, 1)
	if err != nil {
		panic(err)
	}
	for _, f := range spectrum.Keys() {
		c, _ := spectrum.Get(f)
		fmt.Printf("%v: %.3f\n", f, real(c))
	}
	// Output:
	// 5: 2.000
	// 40: -1.000
}

func ExampleMustRecover_twoDimensional() {
	d := sfft.MustDomain(2, 16)
	freq := d.At(3, 12)
	x := sfft.SignalFunc(func(t sfft.Index) complex128 {
		return 1i * sfft.Kernel(freq, t) / complex(float64(d.Size()), 0)
	})

	spectrum := sfft.MustRecover(x, d, 2, 2)
	c, _ := spectrum.Get(freq)
	fmt.Println(spectrum.Len(), freq, math.Round(cmplx.Abs(c)))
	// Output:
	// 1 (3,12) 1
}
