package pixels

import (
	"fmt"

	"github.com/jpfielding/quantum.go/pkg/quantum"
)

// Plane is one 2D image of raw samples in row-major order
type Plane struct {
	Width  int
	Height int
	Type   quantum.PixelType
	Data   []int32
}

// NewPlane creates a zeroed plane
func NewPlane(width, height int, pt quantum.PixelType) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Type:   pt,
		Data:   make([]int32, width*height),
	}
}

// PlaneFromUint16 copies unsigned 16 bit samples into a plane
func PlaneFromUint16(width, height int, data []uint16) (*Plane, error) {
	if len(data) != width*height {
		return nil, fmt.Errorf("pixels: need %d samples for %dx%d, got %d", width*height, width, height, len(data))
	}
	p := NewPlane(width, height, quantum.Uint16)
	for i, v := range data {
		p.Data[i] = int32(v)
	}
	return p, nil
}

// Get returns the sample at (x, y), or 0 outside the plane
func (p *Plane) Get(x, y int) int32 {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return 0
	}
	return p.Data[y*p.Width+x]
}

// Set stores a sample at (x, y); writes outside the plane are dropped
func (p *Plane) Set(x, y int, v int32) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return
	}
	p.Data[y*p.Width+x] = v
}

// MinMax returns the smallest and largest sample
func (p *Plane) MinMax() (min, max int64) {
	return minMax(p.Data)
}

// Validate checks the dimensions and that every sample fits the pixel type
func (p *Plane) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("pixels: invalid dimensions %dx%d", p.Width, p.Height)
	}
	if len(p.Data) != p.Width*p.Height {
		return fmt.Errorf("pixels: %dx%d plane holds %d samples", p.Width, p.Height, len(p.Data))
	}
	if p.Type.Bits() == 0 {
		return fmt.Errorf("pixels: unsupported pixel type %s", p.Type)
	}
	lo, hi := p.Type.Range()
	min, max := p.MinMax()
	if min < lo || max > hi {
		return fmt.Errorf("pixels: samples [%d, %d] exceed %s range", min, max, p.Type)
	}
	return nil
}

func minMax(data []int32) (min, max int64) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return int64(lo), int64(hi)
}
