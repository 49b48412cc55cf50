package glow

// Option configures an Effect during construction.
type Option func(*Effect)

// WithAddressMode sets how blur taps falling outside the buffer are
// resolved. The default is AddressClampToEdge, matching the sampler the
// gpu subpackage configures on the device.
func WithAddressMode(mode AddressMode) Option {
	return func(e *Effect) {
		e.mode = mode
	}
}
