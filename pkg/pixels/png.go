package pixels

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/jpfielding/quantum.go/pkg/quantum"
)

// ReadPNG decodes a grayscale PNG. 8 bit images become Uint8 planes, anything
// else is converted to 16 bit gray.
func ReadPNG(r io.Reader) (*Plane, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding png: %w", err)
	}
	return FromImage(img), nil
}

// ReadPNGFile opens and decodes a PNG plane from disk
func ReadPNGFile(path string) (*Plane, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ReadPNG(f)
}

// FromImage copies the luminance of img into a plane
func FromImage(img image.Image) *Plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if g, ok := img.(*image.Gray); ok {
		p := NewPlane(w, h, quantum.Uint8)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p.Data[y*w+x] = int32(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
		return p
	}

	p := NewPlane(w, h, quantum.Uint16)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			p.Data[y*w+x] = int32(c.Y)
		}
	}
	return p
}
