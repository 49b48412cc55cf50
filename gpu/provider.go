package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// NewFromProvider creates a Pipeline on the shared GPU device of a host
// framework such as gogpu. The provider must expose the underlying HAL
// handles via HalDevice() and HalQueue(); this is the same contract
// gogpu's application context implements for embedded renderers.
func NewFromProvider(provider gpucontext.DeviceProvider, targetFormat gputypes.TextureFormat) (*Pipeline, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("glow: device provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("glow: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("glow: provider HalQueue is not hal.Queue")
	}
	return New(device, queue, targetFormat), nil
}
