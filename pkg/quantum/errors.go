package quantum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned for a malformed QuantumDefinition
	ErrInvalidConfiguration = errors.New("quantum: invalid configuration")
	// ErrInvalidRange is returned for a malformed extent or window
	ErrInvalidRange = errors.New("quantum: invalid range")
	// ErrQuantization is returned when a sample falls outside the extent
	ErrQuantization = errors.New("quantum: sample outside extent")
)

// ConfigError describes a rejected definition field
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("quantum: invalid configuration: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// RangeError describes a rejected extent or window. Op is "extent" or "window".
type RangeError struct {
	Op      string
	Start   float64
	End     float64
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("quantum: invalid %s [%g, %g]: %s", e.Op, e.Start, e.End, e.Message)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// QuantizationError reports a sample that cannot be looked up
type QuantizationError struct {
	Value     float64
	Min       int64
	Max       int64
	ExtentSet bool
}

func (e *QuantizationError) Error() string {
	if !e.ExtentSet {
		return fmt.Sprintf("quantum: cannot quantize %g: extent not set", e.Value)
	}
	return fmt.Sprintf("quantum: value %g outside extent [%d, %d]", e.Value, e.Min, e.Max)
}

func (e *QuantizationError) Unwrap() error { return ErrQuantization }
