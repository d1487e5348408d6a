// Command sfft synthesizes sparse test signals, recovers their spectra
// with the sparse Fourier engine and prints band-pass filter taps.
//
// Usage:
//
//	sfft synth [flags]
//	sfft recover [flags] signal.json
//	sfft taps [flags]
//
// Examples:
//
//	sfft synth --width 4096 --k 8 -o signal.json
//	sfft recover --sparsity 8 --rank 2 signal.json
//	sfft recover --config recover.yaml signal.json
//	sfft taps --width 16 --level 3 --label 5
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
