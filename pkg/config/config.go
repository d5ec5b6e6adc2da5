// Package config loads rendering settings for quantctl from YAML or TOML.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jpfielding/quantum.go/pkg/quantum"
)

// Settings is the full rendering configuration of one channel
type Settings struct {
	// PixelType of the raw samples: int8, uint8, int16 or uint16
	PixelType string `yaml:"pixelType" toml:"pixel_type" json:"pixelType"`

	Quantum Quantum `yaml:"quantum" toml:"quantum" json:"quantum"`
	Window  Window  `yaml:"window" toml:"window" json:"window"`
	Log     Log     `yaml:"log" toml:"log" json:"-"`
	Render  Render  `yaml:"render" toml:"render" json:"-"`
}

// Quantum mirrors quantum.Definition
type Quantum struct {
	Family         string  `yaml:"family" toml:"family" json:"family"`
	Coefficient    float64 `yaml:"coefficient" toml:"coefficient" json:"coefficient"`
	BitResolution  int     `yaml:"bitResolution" toml:"bit_resolution" json:"bitResolution"`
	CodomainStart  int     `yaml:"codomainStart" toml:"codomain_start" json:"codomainStart"`
	CodomainEnd    int     `yaml:"codomainEnd" toml:"codomain_end" json:"codomainEnd"`
	NoiseReduction bool    `yaml:"noiseReduction" toml:"noise_reduction" json:"noiseReduction"`
	NoiseMargin    int     `yaml:"noiseMargin" toml:"noise_margin" json:"noiseMargin"`
	NoiseFraction  float64 `yaml:"noiseFraction" toml:"noise_fraction" json:"noiseFraction"`
}

// Log configures the slog output. An empty File logs to stdout.
type Log struct {
	File    string `yaml:"file" toml:"file"`
	MaxSize int    `yaml:"maxSize" toml:"max_log_size"` // megabytes
	MaxAge  int    `yaml:"maxAge" toml:"max_log_age"`   // days
	JSON    bool   `yaml:"json" toml:"json"`
	Level   string `yaml:"level" toml:"level"`
}

// Render tunes the plane rendering pipeline. CacheBytes of 0 disables the
// rendered plane cache.
type Render struct {
	Workers    int `yaml:"workers" toml:"workers"`
	CacheBytes int `yaml:"cacheBytes" toml:"cache_bytes"`
}

// Default returns the full-range linear settings for 16 bit data
func Default() *Settings {
	return &Settings{
		PixelType: quantum.Uint16.String(),
		Quantum: Quantum{
			Family:        quantum.Linear.String(),
			Coefficient:   1,
			BitResolution: quantum.MaxBitResolution,
			CodomainStart: quantum.MinOutput,
			CodomainEnd:   quantum.MaxOutput,
			NoiseMargin:   quantum.DefaultNoiseMargin,
			NoiseFraction: quantum.DefaultNoiseFraction,
		},
		Window: Window{
			Low:     0.005,
			High:    0.995,
			Presets: append(quantum.CTPresets(), quantum.DXPresets()...),
		},
		Log: Log{
			Level: "INFO",
		},
		Render: Render{
			Workers: runtime.NumCPU(),
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads settings over the defaults. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the settings, choosing the format from the extension
func Save(cfg *Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Definition validates the quantum section
func (s *Settings) Definition() (quantum.Definition, error) {
	q := s.Quantum
	family, err := quantum.ParseFamily(q.Family)
	if err != nil {
		return quantum.Definition{}, err
	}
	return quantum.NewDefinition(q.BitResolution, q.CodomainStart, q.CodomainEnd, q.NoiseReduction,
		quantum.WithFamily(family, q.Coefficient),
		quantum.WithNoiseMargin(q.NoiseMargin),
		quantum.WithNoiseFraction(q.NoiseFraction),
	)
}

// Type parses the configured pixel type
func (s *Settings) Type() (quantum.PixelType, error) {
	return quantum.ParsePixelType(s.PixelType)
}

// Strategy builds an unconfigured strategy from the settings
func (s *Settings) Strategy() (*quantum.Strategy, error) {
	def, err := s.Definition()
	if err != nil {
		return nil, err
	}
	pt, err := s.Type()
	if err != nil {
		return nil, err
	}
	return quantum.NewStrategy(def, pt)
}
