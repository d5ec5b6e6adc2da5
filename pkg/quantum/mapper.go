package quantum

import (
	"fmt"
	"math"
	"strings"
)

// Family selects the curve used between the window and the codomain
type Family int

const (
	Linear Family = iota
	Polynomial
	Exponential
	Logarithmic
)

var familyNames = map[Family]string{
	Linear:      "linear",
	Polynomial:  "polynomial",
	Exponential: "exponential",
	Logarithmic: "logarithmic",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily is case-insensitive and accepts the names returned by String
func ParseFamily(s string) (Family, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range familyNames {
		if n == name {
			return f, nil
		}
	}
	return Linear, &ConfigError{Field: "family", Message: fmt.Sprintf("unknown family %q", s)}
}

// MarshalText lets a Family round trip through YAML, TOML and JSON as its name
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(b []byte) error {
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Mapper is a stateless transform of a sample, optionally parameterized by a
// coefficient k.
type Mapper interface {
	Transform(x, k float64) float64
}

// PolynomialMap computes x^k. With k == 1 it is the identity.
type PolynomialMap struct{}

func (PolynomialMap) Transform(x, k float64) float64 {
	if k == 1 {
		return x
	}
	return math.Pow(x, k)
}

// ExponentialMap computes exp(x^k). k is not validated.
type ExponentialMap struct{}

func (ExponentialMap) Transform(x, k float64) float64 {
	return math.Exp(math.Pow(x, k))
}

// LogarithmicMap computes ln(x) and ignores k. x <= 0 yields -Inf or NaN.
type LogarithmicMap struct{}

func (LogarithmicMap) Transform(x, _ float64) float64 {
	return math.Log(x)
}

// MapperFor returns the mapper implementing a family
func MapperFor(f Family) (Mapper, error) {
	switch f {
	case Linear, Polynomial:
		return PolynomialMap{}, nil
	case Exponential:
		return ExponentialMap{}, nil
	case Logarithmic:
		return LogarithmicMap{}, nil
	}
	return nil, &ConfigError{Field: "family", Message: fmt.Sprintf("unsupported family %d", int(f))}
}

// Sample is any integer or floating point pixel value
type Sample interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// MapSample promotes x to float64 before transforming it, so every input type
// yields the same result for the same mathematical value.
func MapSample[T Sample](m Mapper, x T, k float64) float64 {
	return m.Transform(float64(x), k)
}
