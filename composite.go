package glow

// Composite scales the blurred glow buffer by the frame's final strength
// factor, writing a premultiplied color+alpha suitable for additive
// blending onto the original frame (dst += output). It does not perform
// the blend itself; see Effect.Render for the full chain including the
// additive step.
//
// dst and src must have equal dimensions. dst may alias src.
func Composite(dst, src *Buffer, p Params) {
	s := p.FinalStrength()
	for i, c := range src.pix {
		dst.pix[i] = c.Scale(s)
	}
}
