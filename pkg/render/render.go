// Package render turns raw pixel planes into 8 bit gray images through a
// quantum strategy.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jpfielding/quantum.go/pkg/pixels"
	"github.com/jpfielding/quantum.go/pkg/quantum"
	"github.com/jpfielding/quantum.go/pkg/util"
)

// Renderer quantizes planes. The strategy handed to it must not be
// reconfigured while a render is in flight.
type Renderer struct {
	// Workers bounds concurrent plane renders, <= 0 means one per plane
	Workers int
	// Cache is optional
	Cache *Cache
}

// RenderPlane quantizes every sample of p
func (r *Renderer) RenderPlane(ctx context.Context, p *pixels.Plane, s *quantum.Strategy) (*image.Gray, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := matchType(p.Type, s); err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for i, v := range p.Data {
		q, err := s.QuantizeInt(int64(v))
		if err != nil {
			return nil, fmt.Errorf("render: pixel (%d,%d): %w", i%p.Width, i/p.Width, err)
		}
		img.Pix[i] = q
	}
	return img, nil
}

// RenderStack renders every axial plane of st concurrently. When the renderer
// has a cache and id is not empty, planes are looked up and stored under id,
// the plane index and the strategy settings.
func (r *Renderer) RenderStack(ctx context.Context, id string, st *pixels.Stack, s *quantum.Strategy) ([]*image.Gray, error) {
	if err := matchType(st.Type, s); err != nil {
		return nil, err
	}
	var prefix []byte
	if r.Cache != nil && id != "" {
		key, err := settingsKey(s)
		if err != nil {
			return nil, err
		}
		prefix = append([]byte(id+"/"), key[:]...)
	}

	out := make([]*image.Gray, st.Depth)
	g, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	for z := 0; z < st.Depth; z++ {
		z := z
		g.Go(func() error {
			var key []byte
			if prefix != nil {
				key = fmt.Appendf(append([]byte(nil), prefix...), "/%d", z)
				if pix, ok := r.Cache.Get(key, st.Width*st.Height); ok {
					out[z] = &image.Gray{Pix: pix, Stride: st.Width, Rect: image.Rect(0, 0, st.Width, st.Height)}
					return nil
				}
			}
			img, err := r.RenderPlane(ctx, st.Slice(pixels.Axial, z), s)
			if err != nil {
				return fmt.Errorf("plane %d: %w", z, err)
			}
			if key != nil {
				r.Cache.Set(key, img.Pix)
			}
			out[z] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "rendered stack",
		slog.String("id", id),
		slog.Int("planes", st.Depth),
		slog.Int("width", st.Width),
		slog.Int("height", st.Height))
	return out, nil
}

func matchType(t quantum.PixelType, s *quantum.Strategy) error {
	if t != s.PixelType() {
		return fmt.Errorf("render: %s samples: %w", t, &quantum.ConfigError{
			Field:   "pixelType",
			Message: fmt.Sprintf("strategy built for %s", s.PixelType()),
		})
	}
	return nil
}

// settingsKey identifies everything that shapes the lookup table
func settingsKey(s *quantum.Strategy) ([16]byte, error) {
	d := s.Definition()
	id, err := util.Fingerprint(struct {
		Definition string
		Margin     int
		Fraction   float64
		Type       string
		Min, Max   int64
		Start, End float64
	}{
		d.String(), d.NoiseMargin(), d.NoiseFraction(), s.PixelType().String(),
		s.GlobalMin(), s.GlobalMax(), s.WindowStart(), s.WindowEnd(),
	})
	return id, err
}
