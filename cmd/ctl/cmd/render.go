package cmd

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jpfielding/quantum.go/pkg/config"
	"github.com/jpfielding/quantum.go/pkg/quantum"
	"github.com/jpfielding/quantum.go/pkg/render"
	"github.com/jpfielding/quantum.go/pkg/stats"
	"github.com/spf13/cobra"
)

// NewRenderCmd quantizes PNG planes into 8 bit grayscale PNGs
func NewRenderCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render raw PNG planes to 8 bit",
		Long:  "Computes the channel extent over all input planes, applies the configured window and curve and writes one 8 bit PNG per plane.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := settingsFrom(cmd)
			pf := cmd.Flags()
			applyQuantumFlags(pf, cfg)
			if pf.Changed("workers") {
				cfg.Render.Workers, _ = pf.GetInt("workers")
			}
			if pf.Changed("cache-bytes") {
				cfg.Render.CacheBytes, _ = pf.GetInt("cache-bytes")
			}

			inputs, _ := pf.GetStringSlice("in")
			inputs = append(inputs, args...)
			outDir, _ := pf.GetString("out")
			return runRender(cmd.Context(), cfg, inputs, outDir)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringSliceP("in", "i", nil, "PNG plane(s), in Z order")
	pf.StringP("out", "o", ".", "output directory")
	pf.Int("workers", 0, "concurrent plane renders (0 uses the settings)")
	pf.Int("cache-bytes", 0, "rendered plane cache size, 0 disables it")
	addQuantumFlags(pf)
	return cmd
}

func runRender(ctx context.Context, cfg *config.Settings, inputs []string, outDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := readStack(inputs)
	if err != nil {
		return err
	}
	def, err := cfg.Definition()
	if err != nil {
		return err
	}
	// the decoded PNG decides the sample type
	s, err := quantum.NewStrategy(def, st.Type)
	if err != nil {
		return err
	}
	ch, err := stats.Compute(st.Data)
	if err != nil {
		return err
	}
	if err := cfg.Window.Apply(s, ch); err != nil {
		return err
	}

	r := &render.Renderer{Workers: cfg.Render.Workers}
	if cfg.Render.CacheBytes > 0 {
		r.Cache = render.NewCache(cfg.Render.CacheBytes)
	}
	start := time.Now()
	imgs, err := r.RenderStack(ctx, strings.Join(inputs, ","), st, s)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	var written uint64
	for z, img := range imgs {
		name := strings.TrimSuffix(filepath.Base(inputs[z]), filepath.Ext(inputs[z])) + "_8bit.png"
		path := filepath.Join(outDir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if info, err := f.Stat(); err == nil {
			written += uint64(info.Size())
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "rendered planes",
		slog.Int("planes", len(imgs)),
		slog.String("definition", def.String()),
		slog.Float64("windowStart", s.WindowStart()),
		slog.Float64("windowEnd", s.WindowEnd()),
		slog.String("written", humanize.Bytes(written)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
