package glow

import (
	"image"
	"image/color"
	"testing"
)

func TestBufferAtSetBounds(t *testing.T) {
	b := NewBuffer(3, 2)
	c := RGBA{R: 1, A: 1}
	b.Set(2, 1, c)
	if got := b.At(2, 1); got != c {
		t.Errorf("At(2,1) = %v, want %v", got, c)
	}

	// Out-of-range reads return Transparent, writes are dropped.
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		if got := b.At(pt[0], pt[1]); got != Transparent {
			t.Errorf("At(%d,%d) = %v, want Transparent", pt[0], pt[1], got)
		}
		b.Set(pt[0], pt[1], c) // must not panic
	}
}

func TestBufferSampleAddressing(t *testing.T) {
	// 4-wide ramp: values 0, 1, 2, 3 in the red channel.
	b := NewBuffer(4, 1)
	for x := 0; x < 4; x++ {
		b.Set(x, 0, RGBA{R: float32(x)})
	}

	tests := []struct {
		name string
		mode AddressMode
		x    int
		want float32
	}{
		{"clamp low", AddressClampToEdge, -2, 0},
		{"clamp high", AddressClampToEdge, 9, 3},
		{"repeat low", AddressRepeat, -1, 3},
		{"repeat high", AddressRepeat, 5, 1},
		{"mirror low", AddressMirrorRepeat, -1, 0},
		{"mirror low 2", AddressMirrorRepeat, -2, 1},
		{"mirror high", AddressMirrorRepeat, 4, 3},
		{"mirror high 2", AddressMirrorRepeat, 6, 1},
		{"in range", AddressRepeat, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Sample(tt.x, 0, tt.mode).R; got != tt.want {
				t.Errorf("Sample(%d) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestBufferFillClearClone(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Fill(RGBA{G: 0.5, A: 1})

	c := b.Clone()
	c.Set(0, 0, RGBA{R: 1})
	if b.At(0, 0).R != 0 {
		t.Error("Clone shares storage with original")
	}

	b.Clear()
	if b.At(1, 1) != Transparent {
		t.Error("Clear left non-zero pixels")
	}
}

func TestBufferImageRoundtrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 128, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{A: 0})

	b := FromImage(img)
	if got := b.At(0, 0); got.R != 1 || got.A != 1 {
		t.Errorf("FromImage pixel = %v", got)
	}

	out := b.ToImage()
	if got := out.NRGBAAt(0, 0); got != img.NRGBAAt(0, 0) {
		t.Errorf("roundtrip pixel = %v, want %v", got, img.NRGBAAt(0, 0))
	}
}

func TestBufferToImageClamps(t *testing.T) {
	// Additive blending can push channels past 1; export clamps.
	b := NewBuffer(1, 1)
	b.Set(0, 0, RGBA{R: 2.5, G: -1, B: 0.5, A: 1})
	got := b.ToImage().NRGBAAt(0, 0)
	want := color.NRGBA{R: 255, G: 0, B: 128, A: 255}
	if got != want {
		t.Errorf("clamped export = %v, want %v", got, want)
	}
}
