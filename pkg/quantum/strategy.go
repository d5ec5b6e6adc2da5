package quantum

import (
	"fmt"
	"math"
	"strings"
)

// PixelType is the storage type of the raw samples a strategy quantizes
type PixelType int

const (
	Int8 PixelType = iota
	Uint8
	Int16
	Uint16
)

var pixelTypeNames = map[PixelType]string{
	Int8:   "int8",
	Uint8:  "uint8",
	Int16:  "int16",
	Uint16: "uint16",
}

func (p PixelType) String() string {
	if s, ok := pixelTypeNames[p]; ok {
		return s
	}
	return fmt.Sprintf("PixelType(%d)", int(p))
}

// Bits returns the bit depth, or 0 for an unknown type
func (p PixelType) Bits() int {
	switch p {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	}
	return 0
}

// Signed reports whether samples of this type can be negative
func (p PixelType) Signed() bool {
	return p == Int8 || p == Int16
}

// Range returns the smallest and largest representable sample
func (p PixelType) Range() (int64, int64) {
	n := p.Bits()
	if p.Signed() {
		return -(1 << (n - 1)), 1<<(n-1) - 1
	}
	return 0, 1<<n - 1
}

func ParsePixelType(s string) (PixelType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range pixelTypeNames {
		if n == name {
			return p, nil
		}
	}
	return Uint16, &ConfigError{Field: "pixelType", Message: fmt.Sprintf("unknown pixel type %q", s)}
}

func (p PixelType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PixelType) UnmarshalText(b []byte) error {
	v, err := ParsePixelType(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Strategy quantizes 8 or 16 bit samples through a lookup table spanning the
// extent. It is not safe for concurrent use while SetExtent, SetWindow or
// SetDefinition may run; concurrent Quantize calls alone are fine.
type Strategy struct {
	def       Definition
	pixelType PixelType

	extentSet   bool
	globalMin   int64
	globalMax   int64
	windowStart float64
	windowEnd   float64

	lut []byte
}

// NewStrategy returns a strategy with no extent. SetExtent must be called
// before Quantize.
func NewStrategy(def Definition, pixelType PixelType) (*Strategy, error) {
	if !def.Valid() {
		return nil, &ConfigError{Field: "definition", Message: "not built with NewDefinition"}
	}
	if pixelType.Bits() == 0 {
		return nil, &ConfigError{Field: "pixelType", Message: fmt.Sprintf("unsupported %s", pixelType)}
	}
	return &Strategy{def: def, pixelType: pixelType}, nil
}

// SetExtent sets the global bounds, resets the window to them and rebuilds
// the table. On error the strategy is unchanged.
func (s *Strategy) SetExtent(min, max int64) error {
	if max <= min {
		return &RangeError{Op: "extent", Start: float64(min), End: float64(max), Message: "max must exceed min"}
	}
	if lo, hi := s.pixelType.Range(); min < lo || max > hi {
		return &RangeError{
			Op: "extent", Start: float64(min), End: float64(max),
			Message: fmt.Sprintf("outside %s range [%d, %d]", s.pixelType, lo, hi),
		}
	}
	bits := s.pixelType.Bits()
	// a negative difference means int64 overflow
	if span := max - min; span < 0 || uint64(span) >= 1<<bits {
		return &RangeError{
			Op: "extent", Start: float64(min), End: float64(max),
			Message: fmt.Sprintf("span exceeds %d-bit %s capacity", bits, s.pixelType),
		}
	}
	s.extentSet = true
	s.globalMin, s.globalMax = min, max
	s.windowStart, s.windowEnd = float64(min), float64(max)
	s.rebuild()
	return nil
}

// SetWindow selects the sub-range of the extent mapped onto the codomain and
// rebuilds the table. On error the previous window stays in effect.
func (s *Strategy) SetWindow(start, end float64) error {
	switch {
	case !s.extentSet:
		return &RangeError{Op: "window", Start: start, End: end, Message: "extent not set"}
	case math.IsNaN(start) || math.IsNaN(end):
		return &RangeError{Op: "window", Start: start, End: end, Message: "bounds must be numbers"}
	case start >= end:
		return &RangeError{Op: "window", Start: start, End: end, Message: "start must be below end"}
	case start < float64(s.globalMin) || end > float64(s.globalMax):
		return &RangeError{
			Op: "window", Start: start, End: end,
			Message: fmt.Sprintf("outside extent [%d, %d]", s.globalMin, s.globalMax),
		}
	}
	s.windowStart, s.windowEnd = start, end
	s.rebuild()
	return nil
}

// SetDefinition swaps the quantum definition, rebuilding the table when an
// extent is already set.
func (s *Strategy) SetDefinition(def Definition) error {
	if !def.Valid() {
		return &ConfigError{Field: "definition", Message: "not built with NewDefinition"}
	}
	s.def = def
	if s.extentSet {
		s.rebuild()
	}
	return nil
}

func (s *Strategy) Definition() Definition { return s.def }
func (s *Strategy) PixelType() PixelType   { return s.pixelType }
func (s *Strategy) GlobalMin() int64       { return s.globalMin }
func (s *Strategy) GlobalMax() int64       { return s.globalMax }
func (s *Strategy) WindowStart() float64   { return s.windowStart }
func (s *Strategy) WindowEnd() float64     { return s.windowEnd }

// Quantize truncates v toward zero and returns its display value
func (s *Strategy) Quantize(v float64) (uint8, error) {
	t := math.Trunc(v)
	// int64 conversion is only defined inside [-2^63, 2^63)
	if !s.extentSet || math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, s.outside(v)
	}
	i := int64(t)
	if i < s.globalMin || i > s.globalMax {
		return 0, s.outside(v)
	}
	return s.lut[i-s.globalMin], nil
}

// QuantizeInt is Quantize for integer samples
func (s *Strategy) QuantizeInt(v int64) (uint8, error) {
	if !s.extentSet || v < s.globalMin || v > s.globalMax {
		return 0, s.outside(float64(v))
	}
	return s.lut[v-s.globalMin], nil
}

func (s *Strategy) outside(v float64) error {
	return &QuantizationError{Value: v, Min: s.globalMin, Max: s.globalMax, ExtentSet: s.extentSet}
}

// Table returns a copy of the current lookup table, indexed by sample-GlobalMin
func (s *Strategy) Table() []byte {
	if !s.extentSet {
		return nil
	}
	out := make([]byte, len(s.lut))
	copy(out, s.lut)
	return out
}
