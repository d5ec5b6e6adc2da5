package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/jpfielding/quantum.go/pkg/quantum"
	"github.com/jpfielding/quantum.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewLUTCmd prints the lookup table for an extent and window
func NewLUTCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lut",
		Short: "print a quantization lookup table",
		Long:  "Builds the lookup table for the configured definition, extent and window and prints it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := settingsFrom(cmd)
			pf := cmd.Flags()
			applyQuantumFlags(pf, cfg)
			if pf.Changed("pixel-type") {
				cfg.PixelType, _ = pf.GetString("pixel-type")
			}

			s, err := cfg.Strategy()
			if err != nil {
				return err
			}
			min, max := s.PixelType().Range()
			if pf.Changed("min") {
				min, _ = pf.GetInt64("min")
			}
			if pf.Changed("max") {
				max, _ = pf.GetInt64("max")
			}
			if err := s.SetExtent(min, max); err != nil {
				return err
			}
			if err := cfg.Window.Select(s, nil); err != nil {
				return err
			}
			id, err := util.Fingerprint(cfg)
			if err != nil {
				return err
			}

			table := s.Table()
			slog.DebugContext(ctx, "built lookup table",
				slog.String("settings", id.String()),
				slog.Int("entries", len(table)))
			switch format, _ := pf.GetString("format"); format {
			case "json":
				return writeLUTJSON(cmd.OutOrStdout(), id.String(), s, table)
			default:
				return writeLUTText(cmd.OutOrStdout(), id.String(), s, table)
			}
		},
	}
	pf := cmd.PersistentFlags()
	pf.String("pixel-type", "uint16", "raw sample type (int8|uint8|int16|uint16)")
	pf.Int64("min", 0, "extent minimum (defaults to the pixel type minimum)")
	pf.Int64("max", 0, "extent maximum (defaults to the pixel type maximum)")
	pf.StringP("format", "f", "text", "output format (text|json)")
	addQuantumFlags(pf)
	return cmd
}

type lutReport struct {
	Settings   string  `json:"settings"`
	Definition string  `json:"definition"`
	PixelType  string  `json:"pixelType"`
	Min        int64   `json:"min"`
	Max        int64   `json:"max"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Table      []int   `json:"table"`
}

func writeLUTJSON(w io.Writer, id string, s *quantum.Strategy, table []byte) error {
	r := lutReport{
		Settings:   id,
		Definition: s.Definition().String(),
		PixelType:  s.PixelType().String(),
		Min:        s.GlobalMin(),
		Max:        s.GlobalMax(),
		Start:      s.WindowStart(),
		End:        s.WindowEnd(),
		Table:      make([]int, len(table)),
	}
	for i, v := range table {
		r.Table[i] = int(v)
	}
	return json.NewEncoder(w).Encode(r)
}

// writeLUTText prints one line per run of equal outputs
func writeLUTText(w io.Writer, id string, s *quantum.Strategy, table []byte) error {
	fmt.Fprintf(w, "settings: %s\n", id)
	fmt.Fprintf(w, "definition: %s\n", s.Definition())
	fmt.Fprintf(w, "extent: [%d, %d] %s\n", s.GlobalMin(), s.GlobalMax(), s.PixelType())
	fmt.Fprintf(w, "window: [%g, %g]\n", s.WindowStart(), s.WindowEnd())
	fmt.Fprintf(w, "entries: %s (%s)\n", humanize.Comma(int64(len(table))), humanize.Bytes(uint64(len(table))))
	for i := 0; i < len(table); {
		j := i
		for j+1 < len(table) && table[j+1] == table[i] {
			j++
		}
		lo, hi := s.GlobalMin()+int64(i), s.GlobalMin()+int64(j)
		var err error
		if lo == hi {
			_, err = fmt.Fprintf(w, "%d\t%d\n", lo, table[i])
		} else {
			_, err = fmt.Fprintf(w, "%d..%d\t%d\n", lo, hi, table[i])
		}
		if err != nil {
			return err
		}
		i = j + 1
	}
	return nil
}
