package glow

import "math"

// blurTaps is the half-width of the fixed 9-tap kernel: samples are
// taken at integer offsets in [-blurTaps, blurTaps] along the pass axis.
const blurTaps = 4

// BlurHorizontal applies a 9-tap Gaussian blur along the x-axis.
// dst and src must have equal dimensions. dst may not alias src.
func BlurHorizontal(dst, src *Buffer, p Params, mode AddressMode) {
	blurAxis(dst, src, p.Sigma(), 1, 0, mode)
}

// BlurVertical applies a 9-tap Gaussian blur along the y-axis. It is
// meant to consume the output of BlurHorizontal, completing the
// separable 2D blur. dst and src must have equal dimensions. dst may
// not alias src.
func BlurVertical(dst, src *Buffer, p Params, mode AddressMode) {
	blurAxis(dst, src, p.Sigma(), 0, 1, mode)
}

// blurAxis runs one 1D Gaussian pass along (dx, dy). Weights are left
// unnormalized during accumulation; dividing by the running weight sum
// at the end makes a uniform field blur-invariant even though the fixed
// window truncates the kernel support.
func blurAxis(dst, src *Buffer, sigma float32, dx, dy int, mode AddressMode) {
	var weights [2*blurTaps + 1]float32
	var weightSum float32
	inv2SigmaSq := 0.5 / (float64(sigma) * float64(sigma))
	for i := -blurTaps; i <= blurTaps; i++ {
		w := float32(math.Exp(-float64(i*i) * inv2SigmaSq))
		weights[i+blurTaps] = w
		weightSum += w
	}
	invSum := 1 / weightSum

	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			var acc RGBA
			for i := -blurTaps; i <= blurTaps; i++ {
				s := src.Sample(x+i*dx, y+i*dy, mode)
				w := weights[i+blurTaps]
				acc.R += s.R * w
				acc.G += s.G * w
				acc.B += s.B * w
				acc.A += s.A * w
			}
			dst.pix[y*dst.width+x] = acc.Scale(invSum)
		}
	}
}
