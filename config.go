package glow

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-serializable tuning for the effect, the shape a
// host application exposes in its configuration file. Params is the
// per-frame derivation of a Config plus a clock reading.
type Config struct {
	// Enabled turns the whole effect on or off.
	Enabled bool `yaml:"enabled"`

	// Radius is the blur spread in texels.
	Radius float32 `yaml:"radius"`

	// Threshold is the luminance cutoff for the bright pass.
	Threshold float32 `yaml:"threshold"`

	// Strength is the base additive intensity in [0, 1].
	Strength float32 `yaml:"strength"`

	// ColorBoost is the pre-threshold luminance gain.
	ColorBoost float32 `yaml:"color_boost"`

	// Animation configures the time-driven strength modulation.
	Animation AnimationConfig `yaml:"animation"`
}

// AnimationConfig is the animation subsection of Config.
type AnimationConfig struct {
	Enabled bool `yaml:"enabled"`

	// Type is one of "pulse", "shimmer", "pulse_shimmer".
	Type string `yaml:"type"`

	// Speed multiplies elapsed time; 1.0 is the designed speed.
	Speed float32 `yaml:"speed"`
}

// DefaultConfig returns the designed tuning with the effect enabled and
// animation off.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Radius:     3.0,
		Threshold:  0.6,
		Strength:   0.8,
		ColorBoost: 1.2,
		Animation: AnimationConfig{
			Type:  "pulse",
			Speed: 1.0,
		},
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Config{}, fmt.Errorf("glow: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("glow: parse config: %w", err)
	}
	return cfg, nil
}

// Params derives the per-frame parameter block at the given clock
// reading. It fails only on an unrecognized animation type name.
func (c Config) Params(timeMS uint32) (Params, error) {
	animType, err := parseAnimationType(c.Animation.Type)
	if err != nil {
		return Params{}, err
	}
	return Params{
		Radius:           c.Radius,
		Threshold:        c.Threshold,
		Strength:         c.Strength,
		ColorBoost:       c.ColorBoost,
		TimeMS:           timeMS,
		AnimationEnabled: c.Animation.Enabled,
		AnimationType:    animType,
		AnimationSpeed:   c.Animation.Speed,
	}, nil
}

func parseAnimationType(s string) (AnimationType, error) {
	switch strings.ToLower(s) {
	case "", "pulse":
		return AnimationPulse, nil
	case "shimmer":
		return AnimationShimmer, nil
	case "pulse_shimmer", "pulse-shimmer":
		return AnimationPulseShimmer, nil
	default:
		return 0, fmt.Errorf("glow: unknown animation type %q", s)
	}
}
