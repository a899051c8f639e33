package main

import (
	"fmt"
	"strconv"

	"github.com/handiism/flstudio-hub/internal/calc"
	"github.com/spf13/cobra"
)

func (c *cli) calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Tempo and frequency reference",
	}

	var bars float64
	var beatsPerBar int
	bpm := &cobra.Command{
		Use:   "bpm [tempo]",
		Short: "Delay, reverb and LFO timings for a tempo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tempo := c.hub.Settings.DefaultBPM
			if len(args) == 1 {
				v, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("%w: %q", calc.ErrInvalidBPM, args[0])
				}
				tempo = v
			}
			t, err := calc.Compute(tempo)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%g BPM\n", t.BPM)
			for _, g := range t.Groups() {
				tw := newTable(w)
				tw.SetTitle(g.Title)
				for _, r := range g.Rows {
					row(tw, r.Label, r.Value)
				}
				tw.Render()
			}

			if bars > 0 {
				secs, err := calc.BarsToSeconds(bars, tempo, beatsPerBar)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "\n%g bars of %d/4 = %.2f s\n", bars, beatsPerBar, secs)
			}
			return nil
		},
	}
	bpm.Flags().Float64Var(&bars, "bars", 0, "Also print the length of this many bars in seconds")
	bpm.Flags().IntVar(&beatsPerBar, "beats-per-bar", 4, "Beats per bar for --bars")

	presets := &cobra.Command{
		Use:   "presets",
		Short: "List genre tempo presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "GENRE", "BPM")
			for _, p := range calc.Presets() {
				row(tw, p.Label, p.BPM)
			}
			tw.Render()
			return nil
		},
	}

	bands := &cobra.Command{
		Use:   "bands [hz]",
		Short: "Frequency band reference, or the band containing a frequency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := calc.FrequencyBands()
			if len(args) == 1 {
				hz, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid frequency %q", args[0])
				}
				b, ok := calc.BandFor(hz)
				if !ok {
					return fmt.Errorf("%g Hz is outside the audible bands", hz)
				}
				list = []calc.Band{b}
			}
			tw := newTable(cmd.OutOrStdout(), "BAND", "RANGE", "CHARACTER")
			for _, b := range list {
				row(tw, b.Name, b.Range, b.Desc)
			}
			tw.Render()
			return nil
		},
	}

	cmd.AddCommand(bpm, presets, bands)
	return cmd
}
