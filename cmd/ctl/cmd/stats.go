package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/jpfielding/quantum.go/pkg/pixels"
	"github.com/jpfielding/quantum.go/pkg/quantum"
	"github.com/jpfielding/quantum.go/pkg/stats"
	"github.com/spf13/cobra"
)

// NewStatsCmd reports the channel statistics used to seed a strategy
func NewStatsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "channel statistics of PNG planes",
		Long:  "Reads one or more grayscale PNG planes and prints their extent, moments and suggested windows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, _ := cmd.Flags().GetStringSlice("in")
			inputs = append(inputs, args...)
			st, err := readStack(inputs)
			if err != nil {
				return err
			}
			ch, err := stats.Compute(st.Data)
			if err != nil {
				return err
			}
			low, _ := cmd.Flags().GetFloat64("low")
			high, _ := cmd.Flags().GetFloat64("high")
			pStart, pEnd, err := ch.PercentileWindow(low, high)
			if err != nil {
				return err
			}
			sigma, _ := cmd.Flags().GetFloat64("sigma")
			sStart, sEnd := ch.SigmaWindow(sigma)
			min, max := ch.Extent()

			slog.DebugContext(ctx, "computed channel statistics", slog.Int("samples", ch.Count))
			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "json":
				return json.NewEncoder(out).Encode(map[string]any{
					"pixelType":        st.Type.String(),
					"planes":           st.Depth,
					"samples":          ch.Count,
					"min":              min,
					"max":              max,
					"mean":             ch.Mean,
					"stddev":           ch.StdDev,
					"percentileWindow": quantum.FromWindow(pStart, pEnd),
					"sigmaWindow":      quantum.FromWindow(sStart, sEnd),
				})
			default:
				fmt.Fprintf(out, "planes: %d (%dx%d %s)\n", st.Depth, st.Width, st.Height, st.Type)
				fmt.Fprintf(out, "samples: %s\n", humanize.Comma(int64(ch.Count)))
				fmt.Fprintf(out, "extent: [%d, %d]\n", min, max)
				fmt.Fprintf(out, "mean: %.3f stddev: %.3f\n", ch.Mean, ch.StdDev)
				fmt.Fprintf(out, "percentile window [%g, %g]: [%g, %g]\n", low, high, pStart, pEnd)
				fmt.Fprintf(out, "%g sigma window: [%g, %g]\n", sigma, sStart, sEnd)
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringSliceP("in", "i", nil, "PNG plane(s), in Z order")
	pf.Float64("low", 0.005, "lower percentile of the suggested window")
	pf.Float64("high", 0.995, "upper percentile of the suggested window")
	pf.Float64("sigma", 2, "standard deviations around the mean for the sigma window")
	pf.StringP("format", "f", "text", "output format (text|json)")
	return cmd
}

func readStack(paths []string) (*pixels.Stack, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one input plane is required. Use --in or provide as argument")
	}
	planes := make([]*pixels.Plane, len(paths))
	for i, path := range paths {
		p, err := pixels.ReadPNGFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		planes[i] = p
	}
	return pixels.StackOf(planes...)
}
