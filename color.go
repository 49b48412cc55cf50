package glow

import "image/color"

// RGBA represents one 4-channel color sample with red, green, blue, and
// alpha components. Components are float32 and nominally in [0, 1], but
// no clamping is applied inside the effect: extended-range inputs flow
// through the same formulas.
type RGBA struct {
	R, G, B, A float32
}

// Rec. 709 luma weights used for the bright-pass threshold.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Luminance returns the Rec. 709 luminance of the color.
func (c RGBA) Luminance() float32 {
	return lumaR*c.R + lumaG*c.G + lumaB*c.B
}

// Scale returns the color with all four channels multiplied by s.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Add returns the channel-wise sum of two colors. This is the additive
// blend the compositor output is designed for.
func (c RGBA) Add(o RGBA) RGBA {
	return RGBA{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Transparent is the all-zero color.
var Transparent = RGBA{}

// FromColor converts a standard color.Color to RGBA.
// Premultiplied alpha from the stdlib representation is unwound so the
// channels carry straight color, matching texture sampling semantics.
func FromColor(c color.Color) RGBA {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float32(nc.R) / 255,
		G: float32(nc.G) / 255,
		B: float32(nc.B) / 255,
		A: float32(nc.A) / 255,
	}
}

// Color converts RGBA to the standard color.Color interface, clamping
// each channel to the displayable [0, 1] range.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: quantize(c.R),
		G: quantize(c.G),
		B: quantize(c.B),
		A: quantize(c.A),
	}
}

// quantize maps a float channel to uint8, clamping and rounding to
// nearest so that 8-bit roundtrips are exact.
func quantize(v float32) uint8 {
	return uint8(clamp255(v*255) + 0.5)
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
