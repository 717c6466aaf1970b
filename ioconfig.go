package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lozord/dreamrug-osc/oscil"
)

// Output backends.
const (
	BackendWAV       = "wav"
	BackendPortAudio = "portaudio"
	BackendOto       = "oto"
)

// IOConfig is a patch: where the sound goes and the voices that make it.
type IOConfig struct {
	Output OutputConfig   `toml:"output"`
	Voices []*VoiceConfig `toml:"voices"`
}

type OutputConfig struct {
	Backend  string  `toml:"backend"`
	Path     string  `toml:"path"`
	BitDepth int     `toml:"bit_depth"`
	Seconds  float64 `toml:"seconds"`
	Gain     float64 `toml:"gain"`
}

// VoiceConfig describes one FM voice. Table is a built-in waveform name or
// the path of a single-cycle WAV file.
type VoiceConfig struct {
	Table     string  `toml:"table"`
	Frequency float64 `toml:"frequency"`

	// GlideTo slides the carrier to a second frequency over GlideSeconds.
	GlideTo      float64 `toml:"glide_to"`
	GlideSeconds float64 `toml:"glide_seconds"`

	// The modulator runs at ModRatio times the carrier frequency and
	// shifts the carrier phase by at most ModDepth table lengths.
	ModRatio float64 `toml:"mod_ratio"`
	ModDepth float64 `toml:"mod_depth"`

	// VibratoDepth is the peak pitch deviation as a fraction of the
	// carrier frequency.
	VibratoHz    float64 `toml:"vibrato_hz"`
	VibratoDepth float64 `toml:"vibrato_depth"`
}

func ParseFromFile(file string) (*IOConfig, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file at %q: %w", file, err)
	}
	defer f.Close()

	return Parse(f, file)
}

// Parse decodes a TOML patch from r, fills in defaults and validates it.
// name is only used in error messages.
func Parse(r io.Reader, name string) (*IOConfig, error) {
	var cfg IOConfig
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse IOConfig from TOML file %q: %w", name, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid IOConfig in %q: %w", name, err)
	}

	return &cfg, nil
}

func (c *IOConfig) setDefaults() {
	o := &c.Output
	if o.Backend == "" {
		o.Backend = BackendWAV
	}
	if o.Path == "" {
		o.Path = "out.wav"
	}
	if o.BitDepth == 0 {
		o.BitDepth = 16
	}
	if o.Seconds == 0 {
		o.Seconds = 2
	}
	if o.Gain == 0 {
		o.Gain = 0.8
	}
	for _, v := range c.Voices {
		if v == nil {
			continue
		}
		if v.Table == "" {
			v.Table = "sine"
		}
		if v.ModRatio == 0 {
			v.ModRatio = 1
		}
	}
}

// Validate reports every problem with the patch at once.
func (c *IOConfig) Validate() error {
	var errs []error
	o := c.Output
	switch o.Backend {
	case BackendWAV, BackendPortAudio, BackendOto:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", o.Backend))
	}
	if o.BitDepth != 16 && o.BitDepth != 24 {
		errs = append(errs, fmt.Errorf("bit_depth must be 16 or 24, got %d", o.BitDepth))
	}
	if !(o.Seconds > 0) || math.IsInf(o.Seconds, 0) {
		errs = append(errs, fmt.Errorf("seconds must be positive, got %v", o.Seconds))
	}
	if !(o.Gain > 0 && o.Gain <= 1) {
		errs = append(errs, fmt.Errorf("gain must be in (0, 1], got %v", o.Gain))
	}

	if len(c.Voices) == 0 {
		errs = append(errs, errors.New("no voices"))
	}
	for i, v := range c.Voices {
		if v == nil {
			errs = append(errs, fmt.Errorf("voice %d: empty", i))
			continue
		}
		if err := v.validate(); err != nil {
			errs = append(errs, fmt.Errorf("voice %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (v *VoiceConfig) validate() error {
	nyquist := float64(oscil.AudioRate{}.Rate()) / 2
	lfoNyquist := float64(oscil.ControlRate{}.Rate()) / 2

	var errs []error
	if !(v.Frequency > 0 && v.Frequency < nyquist) {
		errs = append(errs, fmt.Errorf("frequency must be in (0, %v), got %v", nyquist, v.Frequency))
	}
	if !(v.GlideTo >= 0 && v.GlideTo < nyquist) {
		errs = append(errs, fmt.Errorf("glide_to must be in [0, %v), got %v", nyquist, v.GlideTo))
	}
	if !(v.GlideSeconds >= 0) || math.IsInf(v.GlideSeconds, 0) {
		errs = append(errs, fmt.Errorf("glide_seconds must not be negative, got %v", v.GlideSeconds))
	}
	if !(v.ModRatio > 0) || v.ModRatio*max(v.Frequency, v.GlideTo) >= nyquist {
		errs = append(errs, fmt.Errorf("mod_ratio %v puts the modulator above %v Hz", v.ModRatio, nyquist))
	}
	if !(math.Abs(v.ModDepth) <= 8) {
		errs = append(errs, fmt.Errorf("mod_depth must be in [-8, 8], got %v", v.ModDepth))
	}
	if !(v.VibratoHz >= 0 && v.VibratoHz < lfoNyquist) {
		errs = append(errs, fmt.Errorf("vibrato_hz must be in [0, %v), got %v", lfoNyquist, v.VibratoHz))
	}
	if !(v.VibratoDepth >= 0 && v.VibratoDepth < 1) {
		errs = append(errs, fmt.Errorf("vibrato_depth must be in [0, 1), got %v", v.VibratoDepth))
	}
	return errors.Join(errs...)
}
