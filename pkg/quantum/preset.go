package quantum

import (
	"fmt"
	"math"
	"strings"
)

// WindowLevel is a window expressed the way viewers present it: a center and
// a width, plus an optional label (e.g. "BONE", "SOFT_TISSUE").
type WindowLevel struct {
	Center      float64 `yaml:"center" toml:"center" json:"center"`
	Width       float64 `yaml:"width" toml:"width" json:"width"`
	Explanation string  `yaml:"explanation,omitempty" toml:"explanation,omitempty" json:"explanation,omitempty"`
}

// FromWindow converts start/end bounds into center/width form
func FromWindow(start, end float64) WindowLevel {
	return WindowLevel{Center: (start + end) / 2, Width: end - start}
}

// Window returns the start/end bounds of the preset
func (w WindowLevel) Window() (start, end float64) {
	return w.Center - w.Width/2, w.Center + w.Width/2
}

// ClampTo intersects the preset with an extent. It fails when nothing of the
// window is left.
func (w WindowLevel) ClampTo(min, max int64) (start, end float64, err error) {
	start, end = w.Window()
	start = math.Max(start, float64(min))
	end = math.Min(end, float64(max))
	if !(start < end) {
		return 0, 0, &RangeError{
			Op: "window", Start: start, End: end,
			Message: fmt.Sprintf("preset %q does not overlap extent [%d, %d]", w.Explanation, min, max),
		}
	}
	return start, end, nil
}

// Apply clamps the preset to the strategy's extent and sets it as the window
func (w WindowLevel) Apply(s *Strategy) error {
	start, end, err := w.ClampTo(s.GlobalMin(), s.GlobalMax())
	if err != nil {
		return err
	}
	return s.SetWindow(start, end)
}

// CTPresets are the common CT viewing windows, in Hounsfield units
func CTPresets() []WindowLevel {
	return []WindowLevel{
		{Center: 40, Width: 400, Explanation: "SOFT_TISSUE"},
		{Center: 400, Width: 2000, Explanation: "BONE"},
		{Center: -600, Width: 1500, Explanation: "LUNG"},
		{Center: 50, Width: 350, Explanation: "BRAIN"},
	}
}

// DXPresets covers full range 16 bit projection data
func DXPresets() []WindowLevel {
	return []WindowLevel{
		{Center: 32768, Width: 65535, Explanation: "DEFAULT"},
	}
}

// FindPreset looks a preset up by its explanation, ignoring case
func FindPreset(name string, presets []WindowLevel) (WindowLevel, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Explanation, name) {
			return p, true
		}
	}
	return WindowLevel{}, false
}
