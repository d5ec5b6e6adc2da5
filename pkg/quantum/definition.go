package quantum

import (
	"fmt"
	"math"
)

const (
	// MinOutput and MaxOutput bound every codomain
	MinOutput = 0
	MaxOutput = 255
	// MaxBitResolution is the finest output resolution (one step per level)
	MaxBitResolution = 255

	// DefaultNoiseMargin is the number of output levels reserved at each end
	// of the codomain in noise reduction mode.
	DefaultNoiseMargin = 10
	// DefaultNoiseFraction is the share of the extent trimmed from each end of
	// the window in noise reduction mode (one decile).
	DefaultNoiseFraction = 0.1

	// pre-quantization range the curve is normalized over
	preMin = 0.0
	preMax = 255.0
)

// Definition configures how a channel is quantized. Build it with
// NewDefinition; the zero value is invalid.
type Definition struct {
	family         Family
	coefficient    float64
	bitResolution  int
	codomainStart  int
	codomainEnd    int
	noiseReduction bool
	noiseMargin    int
	noiseFraction  float64

	mapper Mapper
	// curve values at preMin and preMax
	norm0, norm1 float64
}

// Option adjusts a Definition under construction
type Option func(*Definition)

// WithFamily selects the curve and its coefficient. Linear ignores k.
func WithFamily(f Family, k float64) Option {
	return func(d *Definition) {
		d.family = f
		d.coefficient = k
		if f == Linear {
			d.coefficient = 1
		}
	}
}

// WithNoiseMargin overrides the number of output levels reserved per end
func WithNoiseMargin(levels int) Option {
	return func(d *Definition) { d.noiseMargin = levels }
}

// WithNoiseFraction overrides the share of the extent trimmed per window end
func WithNoiseFraction(f float64) Option {
	return func(d *Definition) { d.noiseFraction = f }
}

// NewDefinition validates and returns an immutable quantum definition
func NewDefinition(bitResolution, codomainStart, codomainEnd int, noiseReduction bool, opts ...Option) (Definition, error) {
	d := Definition{
		family:         Linear,
		coefficient:    1,
		bitResolution:  bitResolution,
		codomainStart:  codomainStart,
		codomainEnd:    codomainEnd,
		noiseReduction: noiseReduction,
		noiseMargin:    DefaultNoiseMargin,
		noiseFraction:  DefaultNoiseFraction,
	}
	for _, opt := range opts {
		opt(&d)
	}
	if err := d.init(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// DefaultDefinition is the full-resolution linear mapping onto [0, 255]
func DefaultDefinition() Definition {
	d, _ := NewDefinition(MaxBitResolution, MinOutput, MaxOutput, false)
	return d
}

func (d *Definition) init() error {
	switch {
	case d.bitResolution < 1 || d.bitResolution > MaxBitResolution:
		return &ConfigError{Field: "bitResolution", Message: fmt.Sprintf("%d not in [1, %d]", d.bitResolution, MaxBitResolution)}
	case d.codomainStart < MinOutput || d.codomainStart > MaxOutput:
		return &ConfigError{Field: "codomainStart", Message: fmt.Sprintf("%d not in [%d, %d]", d.codomainStart, MinOutput, MaxOutput)}
	case d.codomainEnd < MinOutput || d.codomainEnd > MaxOutput:
		return &ConfigError{Field: "codomainEnd", Message: fmt.Sprintf("%d not in [%d, %d]", d.codomainEnd, MinOutput, MaxOutput)}
	case d.codomainStart >= d.codomainEnd:
		return &ConfigError{Field: "codomain", Message: fmt.Sprintf("start %d must be below end %d", d.codomainStart, d.codomainEnd)}
	case d.noiseMargin < 0:
		return &ConfigError{Field: "noiseMargin", Message: fmt.Sprintf("%d is negative", d.noiseMargin)}
	case math.IsNaN(d.noiseFraction) || d.noiseFraction < 0 || d.noiseFraction >= 0.5:
		return &ConfigError{Field: "noiseFraction", Message: fmt.Sprintf("%g not in [0, 0.5)", d.noiseFraction)}
	case math.IsNaN(d.coefficient) || math.IsInf(d.coefficient, 0):
		return &ConfigError{Field: "coefficient", Message: fmt.Sprintf("%g is not finite", d.coefficient)}
	}
	m, err := MapperFor(d.family)
	if err != nil {
		return err
	}
	d.mapper = m
	d.norm0, d.norm1 = d.curve(preMin), d.curve(preMax)
	if math.IsNaN(d.norm0) || math.IsInf(d.norm0, 0) || math.IsNaN(d.norm1) || math.IsInf(d.norm1, 0) || d.norm0 == d.norm1 {
		return &ConfigError{
			Field:   "coefficient",
			Message: fmt.Sprintf("%s curve with k=%g is degenerate over [%g, %g]", d.family, d.coefficient, preMin, preMax),
		}
	}
	return nil
}

// curve evaluates the mapper on the pre-quantization range. The logarithm is
// shifted by one so ln stays finite at preMin.
func (d *Definition) curve(u float64) float64 {
	if d.family == Logarithmic {
		u++
	}
	return d.mapper.Transform(u, d.coefficient)
}

// normalize maps u in [preMin, preMax] through the curve and back onto the
// same range, independent of the coefficient.
func (d *Definition) normalize(u float64) float64 {
	v := preMin + (preMax-preMin)*(d.curve(u)-d.norm0)/(d.norm1-d.norm0)
	return math.Min(preMax, math.Max(preMin, v))
}

func (d Definition) Family() Family       { return d.family }
func (d Definition) Coefficient() float64 { return d.coefficient }
func (d Definition) BitResolution() int   { return d.bitResolution }
func (d Definition) CodomainStart() int   { return d.codomainStart }
func (d Definition) CodomainEnd() int     { return d.codomainEnd }
func (d Definition) NoiseReduction() bool { return d.noiseReduction }
func (d Definition) NoiseMargin() int     { return d.noiseMargin }
func (d Definition) NoiseFraction() float64 {
	return d.noiseFraction
}

// Valid reports whether d came out of NewDefinition
func (d Definition) Valid() bool { return d.mapper != nil }

func (d Definition) String() string {
	return fmt.Sprintf("%s(k=%g) res=%d codomain=[%d,%d] nr=%t",
		d.family, d.coefficient, d.bitResolution, d.codomainStart, d.codomainEnd, d.noiseReduction)
}
