package glow

import (
	"fmt"
	"math"
)

// AnimationType selects how the compositor modulates glow strength over
// time. The strategy set is a small closed enumeration dispatched by
// value; the branches share no state.
type AnimationType uint8

const (
	// AnimationPulse oscillates strength between 50% and 100% of its
	// base value over a 3-second period.
	AnimationPulse AnimationType = iota

	// AnimationShimmer oscillates strength between 90% and 100% of its
	// base value over a ~0.75-second period.
	AnimationShimmer

	// AnimationPulseShimmer composes both: the shimmer oscillation
	// modulates the pulse output within a +/-5% band, multiplicatively.
	AnimationPulseShimmer
)

// String returns a human-readable name for the animation type.
func (t AnimationType) String() string {
	switch t {
	case AnimationPulse:
		return "Pulse"
	case AnimationShimmer:
		return "Shimmer"
	case AnimationPulseShimmer:
		return "PulseShimmer"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Animation angular rates in rad/s. These constants define the visual
// rhythm of the effect and must match the shader exactly.
const (
	// pulseRate is 2*pi/3: one pulse cycle every 3 seconds.
	pulseRate = 2.094395

	// shimmerRate is 8*pi/3: one shimmer cycle every 0.75 seconds.
	shimmerRate = 8.377580
)

// radiusFloor is the minimum radius used in sigma derivation. Radii at
// or below zero would produce a zero sigma and divide-by-zero weights;
// they are silently clamped, never surfaced as an error.
const radiusFloor = 0.001

// Params is the parameter block shared by all four passes of one frame.
// The host constructs it once per frame from user configuration plus an
// elapsed-time clock; it is read-only for the duration of the chain.
//
// Degenerate values (negative strength, threshold above the renderable
// range) are not validated here: they flow through the same formulas and
// produce well-defined, if visually degenerate, output.
type Params struct {
	// Radius is the blur spread in texels. Values at or below zero are
	// floored to a small epsilon before sigma derivation.
	Radius float32

	// Threshold is the luminance cutoff. Pixels at or below it are
	// fully suppressed by the extract pass (strict greater-than gate).
	Threshold float32

	// Strength is the base additive intensity multiplier, typically
	// in [0, 1].
	Strength float32

	// ColorBoost is a pre-threshold luminance gain. It amplifies
	// near-saturated colors before the threshold comparison; it does
	// not scale the output color itself.
	ColorBoost float32

	// TimeMS is the animation clock in milliseconds since effect start.
	// It wraps naturally at the uint32 boundary; only the fractional
	// animation phase matters.
	TimeMS uint32

	// AnimationEnabled gates the time-driven strength modulation.
	AnimationEnabled bool

	// AnimationType selects the modulation waveform.
	AnimationType AnimationType

	// AnimationSpeed multiplies elapsed time before phase computation.
	// 1.0 is the designed speed.
	AnimationSpeed float32
}

// DefaultParams returns the designed tuning: a visible but restrained
// glow with animation off.
func DefaultParams() Params {
	return Params{
		Radius:         3.0,
		Threshold:      0.6,
		Strength:       0.8,
		ColorBoost:     1.2,
		AnimationSpeed: 1.0,
	}
}

// Sigma derives the Gaussian standard deviation from the blur radius,
// flooring the radius to keep sigma strictly positive.
func (p Params) Sigma() float32 {
	r := p.Radius
	if r < radiusFloor {
		r = radiusFloor
	}
	return r * 0.5
}

// FinalStrength returns the strength factor the compositor applies this
// frame: the base strength when animation is disabled, otherwise the
// base modulated by the selected waveform at the current clock.
func (p Params) FinalStrength() float32 {
	if !p.AnimationEnabled {
		return p.Strength
	}

	timeSec := float64(p.TimeMS) * 0.001 * float64(p.AnimationSpeed)
	switch p.AnimationType {
	case AnimationShimmer:
		cycle := math.Sin(timeSec*shimmerRate)*0.5 + 0.5
		return p.Strength * float32(0.9+cycle*0.1)
	case AnimationPulseShimmer:
		pulseCycle := math.Sin(timeSec*pulseRate)*0.5 + 0.5
		shimmerCycle := math.Sin(timeSec*shimmerRate)*0.5 + 0.5
		pulseStrength := float64(p.Strength) * (0.5 + pulseCycle*0.5)
		return float32(pulseStrength * (0.95 + shimmerCycle*0.05))
	default: // AnimationPulse
		cycle := math.Sin(timeSec*pulseRate)*0.5 + 0.5
		return p.Strength * float32(0.5+cycle*0.5)
	}
}

// Active reports whether running the chain can have any visible result.
// A zero-strength or zero-radius configuration contributes nothing, so
// hosts skip the whole pipeline.
func (p Params) Active() bool {
	return p.Strength > 0 && p.Radius > 0
}
