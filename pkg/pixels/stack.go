package pixels

import (
	"fmt"

	"github.com/jpfielding/quantum.go/pkg/quantum"
)

// Orientation of a plane cut through a stack
type Orientation int

const (
	Axial    Orientation = iota // XY at Z
	Coronal                     // XZ at Y
	Sagittal                    // YZ at X
)

// Stack is a Z series of equally sized planes, slice by slice
type Stack struct {
	Width  int
	Height int
	Depth  int
	Type   quantum.PixelType
	Data   []int32
}

// NewStack creates a zeroed stack
func NewStack(width, height, depth int, pt quantum.PixelType) *Stack {
	return &Stack{
		Width:  width,
		Height: height,
		Depth:  depth,
		Type:   pt,
		Data:   make([]int32, width*height*depth),
	}
}

// StackOf joins planes that share size and type
func StackOf(planes ...*Plane) (*Stack, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("pixels: empty stack")
	}
	first := planes[0]
	s := NewStack(first.Width, first.Height, len(planes), first.Type)
	n := first.Width * first.Height
	for z, p := range planes {
		if p.Width != first.Width || p.Height != first.Height || p.Type != first.Type {
			return nil, fmt.Errorf("pixels: plane %d is %dx%d %s, want %dx%d %s",
				z, p.Width, p.Height, p.Type, first.Width, first.Height, first.Type)
		}
		copy(s.Data[z*n:(z+1)*n], p.Data)
	}
	return s, nil
}

func (s *Stack) Get(x, y, z int) int32 {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || z < 0 || z >= s.Depth {
		return 0
	}
	return s.Data[z*s.Width*s.Height+y*s.Width+x]
}

func (s *Stack) Set(x, y, z int, v int32) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || z < 0 || z >= s.Depth {
		return
	}
	s.Data[z*s.Width*s.Height+y*s.Width+x] = v
}

// Slice returns a copy of the plane cut at index, or nil when index is out
// of range for the orientation.
func (s *Stack) Slice(o Orientation, index int) *Plane {
	switch o {
	case Axial:
		if index < 0 || index >= s.Depth {
			return nil
		}
		p := NewPlane(s.Width, s.Height, s.Type)
		start := index * s.Width * s.Height
		copy(p.Data, s.Data[start:start+s.Width*s.Height])
		return p

	case Coronal:
		if index < 0 || index >= s.Height {
			return nil
		}
		p := NewPlane(s.Width, s.Depth, s.Type)
		for z := 0; z < s.Depth; z++ {
			for x := 0; x < s.Width; x++ {
				p.Data[z*s.Width+x] = s.Get(x, index, z)
			}
		}
		return p

	case Sagittal:
		if index < 0 || index >= s.Width {
			return nil
		}
		p := NewPlane(s.Height, s.Depth, s.Type)
		for z := 0; z < s.Depth; z++ {
			for y := 0; y < s.Height; y++ {
				p.Data[z*s.Height+y] = s.Get(index, y, z)
			}
		}
		return p
	}
	return nil
}

// Planes returns the axial planes in Z order
func (s *Stack) Planes() []*Plane {
	out := make([]*Plane, s.Depth)
	for z := range out {
		out[z] = s.Slice(Axial, z)
	}
	return out
}

// MinMax returns the extent over every plane
func (s *Stack) MinMax() (min, max int64) {
	return minMax(s.Data)
}
