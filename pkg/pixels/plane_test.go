package pixels

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jpfielding/quantum.go/pkg/quantum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlane_GetSet(t *testing.T) {
	p := NewPlane(4, 3, quantum.Uint16)
	p.Set(3, 2, 4095)
	p.Set(4, 0, 7) // dropped
	assert.Equal(t, int32(4095), p.Get(3, 2))
	assert.Equal(t, int32(0), p.Get(-1, 0))

	min, max := p.MinMax()
	assert.Equal(t, int64(0), min)
	assert.Equal(t, int64(4095), max)
	require.NoError(t, p.Validate())
}

func TestPlane_Validate(t *testing.T) {
	p := NewPlane(2, 2, quantum.Uint8)
	p.Data[0] = 256
	require.Error(t, p.Validate())

	p = NewPlane(2, 2, quantum.Int8)
	p.Data[0] = -128
	require.NoError(t, p.Validate())

	p = &Plane{Width: 2, Height: 2, Type: quantum.Uint16, Data: make([]int32, 3)}
	require.Error(t, p.Validate())

	p = NewPlane(0, 2, quantum.Uint16)
	require.Error(t, p.Validate())
}

func TestPlaneFromUint16(t *testing.T) {
	p, err := PlaneFromUint16(2, 2, []uint16{0, 1, 65535, 3})
	require.NoError(t, err)
	assert.Equal(t, int32(65535), p.Get(0, 1))

	_, err = PlaneFromUint16(2, 2, []uint16{1})
	require.Error(t, err)
}

func TestStack_Slice(t *testing.T) {
	s := NewStack(3, 2, 4, quantum.Uint16)
	for z := 0; z < 4; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				s.Set(x, y, z, int32(100*z+10*y+x))
			}
		}
	}

	axial := s.Slice(Axial, 2)
	require.NotNil(t, axial)
	assert.Equal(t, 3, axial.Width)
	assert.Equal(t, 2, axial.Height)
	assert.Equal(t, int32(212), axial.Get(2, 1))

	coronal := s.Slice(Coronal, 1)
	require.NotNil(t, coronal)
	assert.Equal(t, 3, coronal.Width)
	assert.Equal(t, 4, coronal.Height)
	assert.Equal(t, int32(312), coronal.Get(2, 3))

	sagittal := s.Slice(Sagittal, 0)
	require.NotNil(t, sagittal)
	assert.Equal(t, 2, sagittal.Width)
	assert.Equal(t, 4, sagittal.Height)
	assert.Equal(t, int32(110), sagittal.Get(1, 1))

	assert.Nil(t, s.Slice(Axial, 4))
	assert.Nil(t, s.Slice(Orientation(7), 0))

	min, max := s.MinMax()
	assert.Equal(t, int64(0), min)
	assert.Equal(t, int64(312), max)
	assert.Len(t, s.Planes(), 4)
}

func TestStackOf(t *testing.T) {
	a := NewPlane(2, 2, quantum.Uint8)
	b := NewPlane(2, 2, quantum.Uint8)
	b.Data[3] = 9
	s, err := StackOf(a, b)
	require.NoError(t, err)
	assert.Equal(t, int32(9), s.Get(1, 1, 1))

	_, err = StackOf(a, NewPlane(3, 2, quantum.Uint8))
	require.Error(t, err)
	_, err = StackOf()
	require.Error(t, err)
}

func TestReadPNG(t *testing.T) {
	t.Run("Gray16", func(t *testing.T) {
		img := image.NewGray16(image.Rect(0, 0, 2, 1))
		img.SetGray16(1, 0, color.Gray16{Y: 4000})
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, img))

		p, err := ReadPNG(&buf)
		require.NoError(t, err)
		assert.Equal(t, quantum.Uint16, p.Type)
		assert.Equal(t, int32(4000), p.Get(1, 0))
	})

	t.Run("Gray8", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 2))
		img.SetGray(0, 1, color.Gray{Y: 200})
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, img))

		p, err := ReadPNG(&buf)
		require.NoError(t, err)
		assert.Equal(t, quantum.Uint8, p.Type)
		assert.Equal(t, int32(200), p.Get(0, 1))
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ReadPNG(bytes.NewReader([]byte("nope")))
		require.Error(t, err)
	})
}
