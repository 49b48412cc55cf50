package glow

import (
	"image"
	"image/png"
	"os"
)

// AddressMode selects how out-of-range sample coordinates are resolved.
// It emulates the host sampler's address mode for the CPU pass chain;
// the GPU path delegates this to the sampler configured on the device.
type AddressMode uint8

const (
	// AddressClampToEdge clamps coordinates to the nearest edge texel.
	AddressClampToEdge AddressMode = iota

	// AddressRepeat wraps coordinates around the buffer.
	AddressRepeat

	// AddressMirrorRepeat reflects coordinates at the buffer edges.
	AddressMirrorRepeat
)

// String returns a human-readable name for the address mode.
func (m AddressMode) String() string {
	switch m {
	case AddressClampToEdge:
		return "ClampToEdge"
	case AddressRepeat:
		return "Repeat"
	case AddressMirrorRepeat:
		return "MirrorRepeat"
	default:
		return "Unknown"
	}
}

// Buffer is a rectangular float32 RGBA pixel buffer. It is the working
// representation for all CPU passes: float channels preserve the exact
// intermediate values the GPU path carries between render targets.
type Buffer struct {
	width  int
	height int
	pix    []RGBA
}

// NewBuffer creates a new buffer with the given dimensions, cleared to
// transparent black.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]RGBA, width*height),
	}
}

// Width returns the width of the buffer.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *Buffer) Height() int {
	return b.height
}

// At returns the color at (x, y). Out-of-range coordinates return
// Transparent.
func (b *Buffer) At(x, y int) RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent
	}
	return b.pix[y*b.width+x]
}

// Set stores a color at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = c
}

// Sample returns the color at (x, y) with out-of-range coordinates
// resolved by the given address mode, matching GPU sampler behavior
// for integer-texel taps.
func (b *Buffer) Sample(x, y int, mode AddressMode) RGBA {
	return b.pix[resolve(y, b.height, mode)*b.width+resolve(x, b.width, mode)]
}

// resolve maps a possibly out-of-range coordinate into [0, n).
func resolve(v, n int, mode AddressMode) int {
	if v >= 0 && v < n {
		return v
	}
	switch mode {
	case AddressRepeat:
		v %= n
		if v < 0 {
			v += n
		}
		return v
	case AddressMirrorRepeat:
		// Reflect over a period of 2n: 0..n-1 forward, n..2n-1 backward.
		period := 2 * n
		v %= period
		if v < 0 {
			v += period
		}
		if v >= n {
			v = period - 1 - v
		}
		return v
	default: // AddressClampToEdge
		if v < 0 {
			return 0
		}
		return n - 1
	}
}

// Fill sets every pixel to the given color.
func (b *Buffer) Fill(c RGBA) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Clear resets the buffer to transparent black.
func (b *Buffer) Clear() {
	b.Fill(Transparent)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := NewBuffer(b.width, b.height)
	copy(out.pix, b.pix)
	return out
}

// FromImage creates a buffer from an image.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	buf := NewBuffer(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			buf.Set(x, y, FromColor(c))
		}
	}

	return buf
}

// ToImage converts the buffer to an image.NRGBA, clamping channels to
// the displayable range.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*img.Stride + x*4
			c := b.At(x, y)
			img.Pix[i+0] = quantize(c.R)
			img.Pix[i+1] = quantize(c.G)
			img.Pix[i+2] = quantize(c.B)
			img.Pix[i+3] = quantize(c.A)
		}
	}
	return img
}

// SavePNG saves the buffer to a PNG file.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, b.ToImage())
}
