package config

import (
	"fmt"

	"github.com/jpfielding/quantum.go/pkg/quantum"
	"github.com/jpfielding/quantum.go/pkg/stats"
)

// Window picks the initial contrast window. Explicit bounds win over a named
// preset, which wins over the automatic percentile window. With none of them
// the window stays at the full extent.
type Window struct {
	Start  *float64 `yaml:"start,omitempty" toml:"start,omitempty" json:"start,omitempty"`
	End    *float64 `yaml:"end,omitempty" toml:"end,omitempty" json:"end,omitempty"`
	Preset string   `yaml:"preset,omitempty" toml:"preset,omitempty" json:"preset,omitempty"`
	Auto   bool     `yaml:"auto" toml:"auto" json:"auto"`
	// percentiles clipped by the automatic window
	Low  float64 `yaml:"low" toml:"low" json:"low"`
	High float64 `yaml:"high" toml:"high" json:"high"`

	Presets []quantum.WindowLevel `yaml:"presets,omitempty" toml:"presets,omitempty" json:"-"`
}

// Apply sets the extent from ch and then the window
func (w Window) Apply(s *quantum.Strategy, ch *stats.Channel) error {
	min, max := ch.Extent()
	// a flat channel at the top of the type widens downward
	if _, hi := s.PixelType().Range(); max > hi && min == hi {
		min, max = hi-1, hi
	}
	if err := s.SetExtent(min, max); err != nil {
		return err
	}
	return w.Select(s, ch)
}

// Select sets the window of a strategy whose extent is already set. ch is
// only consulted for the automatic window and may be nil otherwise.
func (w Window) Select(s *quantum.Strategy, ch *stats.Channel) error {
	min, max := s.GlobalMin(), s.GlobalMax()
	switch {
	case w.Start != nil || w.End != nil:
		start, end := float64(min), float64(max)
		if w.Start != nil {
			start = *w.Start
		}
		if w.End != nil {
			end = *w.End
		}
		return s.SetWindow(start, end)

	case w.Preset != "":
		p, ok := quantum.FindPreset(w.Preset, w.Presets)
		if !ok {
			return fmt.Errorf("unknown window preset %q", w.Preset)
		}
		return p.Apply(s)

	case w.Auto:
		if ch == nil {
			return fmt.Errorf("automatic window needs sample statistics")
		}
		start, end, err := ch.PercentileWindow(w.Low, w.High)
		if err != nil {
			return err
		}
		return s.SetWindow(start, end)
	}
	return nil
}
