// Package stats computes the channel statistics that seed a quantum strategy:
// the extent, moments and a percentile window for auto contrast.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Channel summarizes the samples of one channel
type Channel struct {
	Count  int
	Min    int64
	Max    int64
	Mean   float64
	StdDev float64

	sorted []float64
}

// Compute gathers statistics over samples
func Compute(samples []int32) (*Channel, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("stats: no samples")
	}
	xs := make([]float64, len(samples))
	for i, v := range samples {
		xs[i] = float64(v)
	}
	sort.Float64s(xs)

	mean, std := stat.MeanStdDev(xs, nil)
	if math.IsNaN(std) {
		std = 0 // single sample
	}
	return &Channel{
		Count:  len(xs),
		Min:    int64(xs[0]),
		Max:    int64(xs[len(xs)-1]),
		Mean:   mean,
		StdDev: std,
		sorted: xs,
	}, nil
}

// Extent returns the bounds to hand to Strategy.SetExtent. A flat channel is
// widened by one so the extent is never empty.
func (c *Channel) Extent() (min, max int64) {
	if c.Max > c.Min {
		return c.Min, c.Max
	}
	return c.Min, c.Min + 1
}

// Quantile returns the empirical p quantile, p in [0, 1]
func (c *Channel) Quantile(p float64) float64 {
	return stat.Quantile(p, stat.Empirical, c.sorted, nil)
}

// PercentileWindow returns a window clipping the lo and hi tails, e.g.
// PercentileWindow(0.005, 0.995). It falls back to the full extent when the
// tails collapse onto each other.
func (c *Channel) PercentileWindow(lo, hi float64) (start, end float64, err error) {
	if lo < 0 || hi > 1 || lo >= hi {
		return 0, 0, fmt.Errorf("stats: invalid percentiles [%g, %g]", lo, hi)
	}
	start, end = c.Quantile(lo), c.Quantile(hi)
	if start >= end {
		min, max := c.Extent()
		return float64(min), float64(max), nil
	}
	return start, end, nil
}

// SigmaWindow returns mean ± n standard deviations clipped to the extent
func (c *Channel) SigmaWindow(n float64) (start, end float64) {
	min, max := c.Extent()
	start = math.Max(float64(min), c.Mean-n*c.StdDev)
	end = math.Min(float64(max), c.Mean+n*c.StdDev)
	if start >= end {
		return float64(min), float64(max)
	}
	return start, end
}
