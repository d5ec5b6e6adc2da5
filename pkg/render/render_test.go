package render

import (
	"context"
	"testing"

	"github.com/jpfielding/quantum.go/pkg/pixels"
	"github.com/jpfielding/quantum.go/pkg/quantum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampStack(t *testing.T, depth int) *pixels.Stack {
	t.Helper()
	st := pixels.NewStack(64, 16, depth, quantum.Uint16)
	for z := 0; z < depth; z++ {
		for y := 0; y < st.Height; y++ {
			for x := 0; x < st.Width; x++ {
				st.Set(x, y, z, int32(z*1000+x*y))
			}
		}
	}
	return st
}

func strategyFor(t *testing.T, min, max int64) *quantum.Strategy {
	t.Helper()
	s, err := quantum.NewStrategy(quantum.DefaultDefinition(), quantum.Uint16)
	require.NoError(t, err)
	require.NoError(t, s.SetExtent(min, max))
	return s
}

func TestRenderPlane(t *testing.T) {
	p := pixels.NewPlane(256, 1, quantum.Uint16)
	for x := 0; x < 256; x++ {
		p.Set(x, 0, int32(x))
	}
	s := strategyFor(t, 0, 255)

	r := &Renderer{}
	img, err := r.RenderPlane(context.Background(), p, s)
	require.NoError(t, err)
	for x := 0; x < 256; x++ {
		require.Equal(t, uint8(x), img.GrayAt(x, 0).Y)
	}
}

func TestRenderPlane_Errors(t *testing.T) {
	s := strategyFor(t, 0, 100)
	r := &Renderer{}

	p := pixels.NewPlane(2, 2, quantum.Uint16)
	p.Set(1, 1, 101)
	_, err := r.RenderPlane(context.Background(), p, s)
	require.ErrorIs(t, err, quantum.ErrQuantization)
	assert.Contains(t, err.Error(), "pixel (1,1)")

	_, err = r.RenderPlane(context.Background(), pixels.NewPlane(2, 2, quantum.Uint8), s)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.RenderPlane(ctx, pixels.NewPlane(2, 2, quantum.Uint16), s)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderStack_MatchesSequential(t *testing.T) {
	st := rampStack(t, 6)
	min, max := st.MinMax()
	s := strategyFor(t, min, max)
	require.NoError(t, s.SetWindow(500, 4000))

	r := &Renderer{Workers: 3}
	imgs, err := r.RenderStack(context.Background(), "", st, s)
	require.NoError(t, err)
	require.Len(t, imgs, 6)

	for z, p := range st.Planes() {
		want, err := r.RenderPlane(context.Background(), p, s)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, imgs[z].Pix, "plane %d", z)
	}
}

func TestRenderStack_Cache(t *testing.T) {
	st := rampStack(t, 4)
	min, max := st.MinMax()
	s := strategyFor(t, min, max)

	cache := NewCache(8 << 20)
	r := &Renderer{Workers: 2, Cache: cache}

	first, err := r.RenderStack(context.Background(), "stack-a", st, s)
	require.NoError(t, err)
	hits, misses := cache.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(4), misses)

	second, err := r.RenderStack(context.Background(), "stack-a", st, s)
	require.NoError(t, err)
	hits, _ = cache.Stats()
	assert.Equal(t, uint64(4), hits)
	for z := range first {
		assert.Equal(t, first[z].Pix, second[z].Pix)
		assert.Equal(t, first[z].Bounds(), second[z].Bounds())
	}

	// a new window is a new key
	require.NoError(t, s.SetWindow(float64(min), float64(max)/2))
	third, err := r.RenderStack(context.Background(), "stack-a", st, s)
	require.NoError(t, err)
	hits, misses = cache.Stats()
	assert.Equal(t, uint64(4), hits)
	assert.Equal(t, uint64(8), misses)
	assert.NotEqual(t, first[3].Pix, third[3].Pix)

	cache.Clear()
	_, err = r.RenderStack(context.Background(), "stack-a", st, s)
	require.NoError(t, err)
	_, misses = cache.Stats()
	assert.Equal(t, uint64(12), misses)
}

func TestRenderStack_PixelTypeMismatch(t *testing.T) {
	st := rampStack(t, 2)
	min, max := st.MinMax()
	s := strategyFor(t, min, max)

	r := &Renderer{Cache: NewCache(8 << 20)}
	_, err := r.RenderStack(context.Background(), "stack-a", st, s)
	require.NoError(t, err)

	// same id and settings, different sample type: no cached planes come back
	signed := pixels.NewStack(st.Width, st.Height, st.Depth, quantum.Int16)
	imgs, err := r.RenderStack(context.Background(), "stack-a", signed, s)
	require.ErrorIs(t, err, quantum.ErrInvalidConfiguration)
	assert.Nil(t, imgs)
	hits, _ := r.Cache.Stats()
	assert.Equal(t, uint64(0), hits)

	_, err = r.RenderPlane(context.Background(), signed.Slice(pixels.Axial, 0), s)
	require.ErrorIs(t, err, quantum.ErrInvalidConfiguration)
}

func TestRenderStack_Error(t *testing.T) {
	st := rampStack(t, 3)
	s := strategyFor(t, 0, 10)
	_, err := (&Renderer{}).RenderStack(context.Background(), "", st, s)
	require.ErrorIs(t, err, quantum.ErrQuantization)
}
