package quantum

import (
	"log/slog"
	"math"
)

// rebuild recomputes every table entry for the current extent, window and
// definition. Entries are rounded half away from zero.
//
// Without noise reduction the window is stretched over the whole codomain.
// With it, NoiseMargin levels are held back at each end of the codomain and
// the window shrinks by NoiseFraction of the extent at each end; samples in
// the trimmed parts clamp to the margin boundaries.
func (s *Strategy) rebuild() {
	n := int(s.globalMax-s.globalMin) + 1
	if cap(s.lut) < n {
		s.lut = make([]byte, n)
	}
	s.lut = s.lut[:n]

	d := &s.def
	lo, hi := float64(d.codomainStart), float64(d.codomainEnd)
	ws, we := s.windowStart, s.windowEnd

	rampLo, rampHi := lo, hi
	inStart, inEnd := ws, we
	nr := false
	if d.noiseReduction {
		margin := float64(d.noiseMargin)
		decile := d.noiseFraction * float64(s.globalMax-s.globalMin)
		if hi-lo > 2*margin && we-ws > 2*decile {
			nr = true
			rampLo, rampHi = lo+margin, hi-margin
			inStart, inEnd = ws+decile, we-decile
		} else {
			slog.Debug("noise reduction skipped, window or codomain too narrow",
				slog.Float64("windowStart", ws),
				slog.Float64("windowEnd", we),
				slog.Float64("decile", decile),
				slog.Int("margin", d.noiseMargin))
		}
	}

	res := float64(d.bitResolution)
	a1 := (rampHi - rampLo) / res
	for i := range s.lut {
		x := float64(s.globalMin + int64(i))
		var out float64
		switch {
		case x <= ws:
			out = lo
		case x >= we:
			out = hi
		case nr && x <= inStart:
			out = rampLo
		case nr && x >= inEnd:
			out = rampHi
		default:
			u := preMin + (preMax-preMin)*(x-inStart)/(inEnd-inStart)
			level := math.Round(d.normalize(u) * res / preMax)
			out = math.Round(rampLo + a1*level)
		}
		s.lut[i] = byte(out)
	}

	slog.Debug("rebuilt lookup table",
		slog.Int("entries", n),
		slog.Int64("globalMin", s.globalMin),
		slog.Int64("globalMax", s.globalMax),
		slog.Float64("windowStart", ws),
		slog.Float64("windowEnd", we),
		slog.String("definition", d.String()))
}
