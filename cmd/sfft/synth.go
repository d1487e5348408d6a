package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sfft/dsp/sfft"
	"github.com/cwbudde/algo-sfft/internal/reference"
)

type synthFlags struct {
	dims        int
	width       int
	k           int
	seed        int64
	spectrum    string
	spectrumOut string
	output      string
}

func newSynthCmd(a *app) *cobra.Command {
	f := &synthFlags{}
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write the time-domain signal of a sparse spectrum",
		Long: "Synth builds a sparse spectrum, either random or read from a YAML\n" +
			"spectrum file, and writes its inverse DFT as a JSON signal file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSynth(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.dims, "dims", 1, "number of axes")
	fs.IntVar(&f.width, "width", 1024, "points per axis (power of two)")
	fs.IntVar(&f.k, "k", 8, "number of random nonzero coefficients")
	fs.Int64Var(&f.seed, "seed", 1, "seed of the random spectrum")
	fs.StringVar(&f.spectrum, "spectrum", "", "YAML spectrum file to synthesize instead of a random one")
	fs.StringVar(&f.spectrumOut, "spectrum-out", "", "write the synthesized spectrum as YAML to this file")
	fs.StringVarP(&f.output, "output", "o", "", "signal output file (default stdout)")
	return cmd
}

func (a *app) runSynth(cmd *cobra.Command, f *synthFlags) error {
	var (
		d   sfft.Domain
		tab *sfft.Table
		err error
	)
	if f.spectrum != "" {
		in, err := openInput(f.spectrum, cmd.InOrStdin())
		if err != nil {
			return err
		}
		s, err := readSpectrum(in)
		_ = in.Close()
		if err != nil {
			return err
		}
		if d, tab, err = s.table(); err != nil {
			return err
		}
	} else {
		if d, err = sfft.NewDomain(f.dims, f.width); err != nil {
			return err
		}
		if f.k < 0 || int64(f.k) > d.Size() {
			return fmt.Errorf("k must be in [0, %d]: %d", d.Size(), f.k)
		}
		tab = randomSpectrum(d, f.k, f.seed)
	}

	values, err := reference.Inverse(d.Dims(), d.Width(), tab.Dense(d))
	if err != nil {
		return err
	}
	a.logger.Debug("synthesized signal", "domain", d.String(), "coefficients", tab.Len())

	if f.spectrumOut != "" {
		out, err := createOutput(f.spectrumOut, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		err = writeSpectrum(out, newSpectrumFile(d, tab))
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}

	out, err := createOutput(f.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	err = writeSignal(out, newSignalFile(d, values))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// randomSpectrum returns k distinct frequencies with coefficients of
// magnitude between 1 and 2 and uniform phase.
func randomSpectrum(d sfft.Domain, k int, seed int64) *sfft.Table {
	rng := rand.New(rand.NewSource(seed))
	tab := sfft.NewTable()
	for tab.Len() < k {
		f := d.Index(rng.Int63n(d.Size()))
		if _, ok := tab.Get(f); ok {
			continue
		}
		mag := 1 + rng.Float64()
		phase := sfft.Kernel(d.Index(1), d.Index(rng.Int63n(int64(d.Width()))))
		tab.Set(f, complex(mag, 0)*phase)
	}
	return tab
}
