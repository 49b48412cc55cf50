package glow

// ExtractBright runs the bright-pass: every pixel whose boosted luminance
// exceeds the threshold is copied to dst unchanged with alpha 1, every
// other pixel becomes fully transparent black.
//
// ColorBoost amplifies the color before the luminance comparison only;
// the pixel written to dst is the original, unboosted color. Alpha
// carries the binary gate forward so the blur passes never bleed glow
// out of suppressed regions.
//
// dst and src must have equal dimensions. dst may not alias src.
func ExtractBright(dst, src *Buffer, p Params) {
	for y := 0; y < src.height; y++ {
		row := src.pix[y*src.width : (y+1)*src.width]
		out := dst.pix[y*dst.width : (y+1)*dst.width]
		for x, c := range row {
			boosted := RGBA{R: c.R * p.ColorBoost, G: c.G * p.ColorBoost, B: c.B * p.ColorBoost}
			if boosted.Luminance() > p.Threshold {
				out[x] = RGBA{R: c.R, G: c.G, B: c.B, A: 1}
			} else {
				out[x] = Transparent
			}
		}
	}
}
