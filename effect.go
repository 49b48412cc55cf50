package glow

import "fmt"

// Effect runs the four-pass glow chain on CPU buffers. It owns the two
// intermediate buffers the chain ping-pongs through, so repeated frames
// at a stable size allocate nothing.
//
// An Effect is not safe for concurrent use; render one frame at a time.
type Effect struct {
	width  int
	height int
	mode   AddressMode

	bright  *Buffer // extract output, reused for the blur-V output
	scratch *Buffer // blur-H output
}

// NewEffect creates an effect sized for width x height frames.
func NewEffect(width, height int, opts ...Option) *Effect {
	e := &Effect{
		width:  width,
		height: height,
		mode:   AddressClampToEdge,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.bright = NewBuffer(width, height)
	e.scratch = NewBuffer(width, height)
	return e
}

// Width returns the frame width the effect is sized for.
func (e *Effect) Width() int { return e.width }

// Height returns the frame height the effect is sized for.
func (e *Effect) Height() int { return e.height }

// Resize reallocates the intermediate buffers for a new frame size.
// It is a no-op when the size is unchanged.
func (e *Effect) Resize(width, height int) {
	if width == e.width && height == e.height {
		return
	}
	Logger().Debug("glow: resize",
		"from_width", e.width, "from_height", e.height,
		"to_width", width, "to_height", height)
	e.width = width
	e.height = height
	e.bright = NewBuffer(width, height)
	e.scratch = NewBuffer(width, height)
}

// Apply runs the full chain on src and writes the resulting glow layer
// to dst: extract, horizontal blur, vertical blur, composite. dst holds
// premultiplied color+alpha meant for additive blending; src is left
// untouched. Both buffers must match the effect's size.
func (e *Effect) Apply(dst, src *Buffer, p Params) error {
	if src.width != e.width || src.height != e.height {
		return fmt.Errorf("glow: source is %dx%d, effect is sized %dx%d",
			src.width, src.height, e.width, e.height)
	}
	if dst.width != e.width || dst.height != e.height {
		return fmt.Errorf("glow: destination is %dx%d, effect is sized %dx%d",
			dst.width, dst.height, e.width, e.height)
	}

	ExtractBright(e.bright, src, p)
	BlurHorizontal(e.scratch, e.bright, p, e.mode)
	BlurVertical(e.bright, e.scratch, p, e.mode)
	Composite(dst, e.bright, p)
	return nil
}

// Render applies the effect to frame in place: the glow layer computed
// from frame is blended additively back onto it. Inactive parameters
// (zero strength or radius) skip the chain entirely.
func (e *Effect) Render(frame *Buffer, p Params) error {
	if !p.Active() {
		return nil
	}
	if frame.width != e.width || frame.height != e.height {
		return fmt.Errorf("glow: frame is %dx%d, effect is sized %dx%d",
			frame.width, frame.height, e.width, e.height)
	}

	ExtractBright(e.bright, frame, p)
	BlurHorizontal(e.scratch, e.bright, p, e.mode)
	BlurVertical(e.bright, e.scratch, p, e.mode)
	Composite(e.bright, e.bright, p)
	AddTo(frame, e.bright)
	return nil
}

// AddTo blends src onto dst additively, channel by channel (dst += src).
// This is the final blend step the compositor output is designed for.
// Both buffers must have equal dimensions.
func AddTo(dst, src *Buffer) {
	if dst.width != src.width || dst.height != src.height {
		return
	}
	for i, c := range src.pix {
		dst.pix[i] = dst.pix[i].Add(c)
	}
}
