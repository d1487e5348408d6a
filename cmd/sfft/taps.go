package main

import (
	"fmt"
	"math/cmplx"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sfft/dsp/sfft"
)

type tapsFlags struct {
	dims  int
	width int
	level int
	label uint64
	mask  uint64
}

func newTapsCmd(a *app) *cobra.Command {
	f := &tapsFlags{}
	cmd := &cobra.Command{
		Use:   "taps",
		Short: "Print the time-domain taps of a cone filter",
		Long: "Taps prints the band-pass filter of the cone whose first level\n" +
			"interleaved frequency bits equal label. Without --mask every one of\n" +
			"those bits is constrained.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTaps(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.dims, "dims", 1, "number of axes")
	fs.IntVar(&f.width, "width", 16, "points per axis (power of two)")
	fs.IntVar(&f.level, "level", 1, "tree level of the cone")
	fs.Uint64Var(&f.label, "label", 0, "path bits of the cone")
	fs.Uint64Var(&f.mask, "mask", 0, "constrained bits (default all bits below level)")
	return cmd
}

func (a *app) runTaps(cmd *cobra.Command, f *tapsFlags) error {
	d, err := sfft.NewDomain(f.dims, f.width)
	if err != nil {
		return err
	}
	if f.level < 0 || f.level > d.Depth() {
		return fmt.Errorf("level must be in [0, %d]: %d", d.Depth(), f.level)
	}
	below := uint64(1)<<f.level - 1
	mask := below
	if cmd.Flags().Changed("mask") {
		mask = f.mask & below
	}
	cone := sfft.Cone{Level: f.level, Label: f.label & below, Mask: mask}

	filter, err := sfft.NewFilter(d, cone)
	if err != nil {
		return err
	}
	a.logger.Debug("built filter", "domain", d.String(), "level", cone.Level, "taps", filter.Len())

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Offset\tRe\tIm\tMagnitude\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t--\t--\t---------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	for _, tap := range filter.Taps() {
		if _, err := fmt.Fprintf(tw, "%v\t%.6f\t%.6f\t%.6f\n",
			tap.Offset,
			real(tap.Weight),
			imag(tap.Weight),
			cmplx.Abs(tap.Weight),
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	return tw.Flush()
}
