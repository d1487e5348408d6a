package main

import (
	"fmt"
	"io"
	"math/cmplx"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sfft/dsp/sfft"
)

type recoverFlags struct {
	config       string
	sparsity     int
	rank         int
	seed         int64
	tolerance    float64
	sampleFactor float64
	noPreemptive bool
	format       string
	output       string
}

func newRecoverCmd(a *app) *cobra.Command {
	f := &recoverFlags{}
	cmd := &cobra.Command{
		Use:   "recover [flags] signal.json",
		Short: "Recover the sparse spectrum of a signal file",
		Long: "Recover reads a dense signal (JSON, \"-\" for stdin) and prints its\n" +
			"nonzero Fourier coefficients. The sparsity bound must not be lower than\n" +
			"the true number of coefficients.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRecoverConfig(f.config)
			if err != nil {
				return err
			}
			f.apply(cmd, &cfg)
			if err := cfg.validate(); err != nil {
				return err
			}
			return a.runRecover(cmd, args[0], cfg, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "YAML file with recovery settings")
	fs.IntVarP(&f.sparsity, "sparsity", "s", 0, "upper bound on the number of nonzero coefficients")
	fs.IntVarP(&f.rank, "rank", "r", 1, "recursion rank (1 = single-level search)")
	fs.Int64Var(&f.seed, "seed", sfft.DefaultSeed, "seed of the sample time generator")
	fs.Float64Var(&f.tolerance, "tolerance", sfft.DefaultTolerance, "zero test tolerance per coefficient")
	fs.Float64Var(&f.sampleFactor, "sample-factor", sfft.DefaultSampleFactor, "zero test sample factor")
	fs.BoolVar(&f.noPreemptive, "no-preemptive", false, "skip the zero test before nested passes")
	fs.StringVarP(&f.format, "format", "f", "table", "output format: table or yaml")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// apply copies explicitly set flags over cfg.
func (f *recoverFlags) apply(cmd *cobra.Command, cfg *recoverConfig) {
	fs := cmd.Flags()
	if fs.Changed("sparsity") {
		cfg.Sparsity = f.sparsity
	}
	if fs.Changed("rank") {
		cfg.Rank = f.rank
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("tolerance") {
		cfg.Tolerance = f.tolerance
	}
	if fs.Changed("sample-factor") {
		cfg.SampleFactor = f.sampleFactor
	}
	if fs.Changed("no-preemptive") {
		cfg.Preemptive = !f.noPreemptive
	}
}

func (a *app) runRecover(cmd *cobra.Command, path string, cfg recoverConfig, f *recoverFlags) error {
	if f.format != "table" && f.format != "yaml" {
		return fmt.Errorf("unknown format %q", f.format)
	}

	in, err := openInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	file, err := readSignal(in)
	_ = in.Close()
	if err != nil {
		return err
	}
	x, err := file.signal()
	if err != nil {
		return err
	}
	d := x.Domain()

	opts := append(cfg.options(), sfft.WithLogger(a.logger))
	r, err := sfft.New(d, opts...)
	if err != nil {
		return err
	}
	spectrum, st, err := r.RecoverStats(cmd.Context(), x, cfg.Sparsity, cfg.Rank)
	if err != nil {
		return err
	}
	a.logger.Info("recovered spectrum",
		"domain", d.String(),
		"coefficients", spectrum.Len(),
		"samples", st.Samples,
		"zero_tests", st.ZeroTests,
		"splits", st.Splits,
		"failed_passes", st.FailedPasses,
	)

	out, err := createOutput(f.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if f.format == "yaml" {
		err = writeSpectrum(out, newSpectrumFile(d, spectrum))
	} else {
		err = printSpectrum(out, spectrum)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

func printSpectrum(w io.Writer, spectrum *sfft.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Index\tRe\tIm\tMagnitude\tLevel [dB]\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "-----\t--\t--\t---------\t----------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	for _, f := range spectrum.Keys() {
		c, _ := spectrum.Get(f)
		if _, err := fmt.Fprintf(tw, "%v\t%.6f\t%.6f\t%.6f\t%.2f\n",
			f,
			real(c),
			imag(c),
			cmplx.Abs(c),
			magnitudeDB(c),
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	return tw.Flush()
}
