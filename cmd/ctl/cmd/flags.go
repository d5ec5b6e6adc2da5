package cmd

import (
	"github.com/jpfielding/quantum.go/pkg/config"
	"github.com/spf13/pflag"
)

// addQuantumFlags registers the overrides shared by lut and render
func addQuantumFlags(pf *pflag.FlagSet) {
	pf.String("family", "", "curve family (linear|polynomial|exponential|logarithmic)")
	pf.Float64("coefficient", 1, "curve coefficient")
	pf.Int("bit-resolution", 255, "number of output steps (1-255)")
	pf.Int("codomain-start", 0, "lowest output value")
	pf.Int("codomain-end", 255, "highest output value")
	pf.Bool("noise-reduction", false, "reserve output margins and trim the window tails")
	pf.Float64("start", 0, "window start")
	pf.Float64("end", 0, "window end")
	pf.String("preset", "", "named window preset (e.g. SOFT_TISSUE, BONE, LUNG)")
	pf.Bool("auto", false, "derive the window from percentiles of the samples")
}

// applyQuantumFlags overrides settings with the flags the user set
func applyQuantumFlags(pf *pflag.FlagSet, cfg *config.Settings) {
	q := &cfg.Quantum
	if pf.Changed("family") {
		q.Family, _ = pf.GetString("family")
	}
	if pf.Changed("coefficient") {
		q.Coefficient, _ = pf.GetFloat64("coefficient")
	}
	if pf.Changed("bit-resolution") {
		q.BitResolution, _ = pf.GetInt("bit-resolution")
	}
	if pf.Changed("codomain-start") {
		q.CodomainStart, _ = pf.GetInt("codomain-start")
	}
	if pf.Changed("codomain-end") {
		q.CodomainEnd, _ = pf.GetInt("codomain-end")
	}
	if pf.Changed("noise-reduction") {
		q.NoiseReduction, _ = pf.GetBool("noise-reduction")
	}

	w := &cfg.Window
	if pf.Changed("start") {
		v, _ := pf.GetFloat64("start")
		w.Start = &v
	}
	if pf.Changed("end") {
		v, _ := pf.GetFloat64("end")
		w.End = &v
	}
	if pf.Changed("preset") {
		w.Preset, _ = pf.GetString("preset")
	}
	if pf.Changed("auto") {
		w.Auto, _ = pf.GetBool("auto")
	}
}
