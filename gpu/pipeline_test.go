package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/glow"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func TestPipelineNew(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := New(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if p == nil {
		t.Fatal("expected non-nil Pipeline")
	}
	if p.device != device || p.queue != queue {
		t.Error("device/queue not stored")
	}
	if w, h := p.Size(); w != 0 || h != 0 {
		t.Errorf("size before resize = (%d, %d), want (0, 0)", w, h)
	}
	if p.extractPipe != nil {
		t.Error("pipelines should be created lazily")
	}
}

func TestPipelineResize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := New(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer p.Destroy()

	if err := p.Resize(800, 600); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := p.Size(); w != 800 || h != 600 {
		t.Errorf("size = (%d, %d), want (800, 600)", w, h)
	}
	if p.glowTex == nil || p.scratchTex == nil {
		t.Error("intermediate textures not created")
	}
	if p.glowBind == nil || p.scratchBind == nil {
		t.Error("intermediate bind groups not created")
	}
	if p.extractPipe == nil || p.blurHPipe == nil || p.blurVPipe == nil || p.compositePipe == nil {
		t.Error("render pipelines not created")
	}

	// Same size is a no-op, keeping the existing textures.
	glowTex := p.glowTex
	if err := p.Resize(800, 600); err != nil {
		t.Fatalf("idempotent Resize failed: %v", err)
	}
	if p.glowTex != glowTex {
		t.Error("idempotent resize recreated textures")
	}

	// New size replaces them.
	if err := p.Resize(1024, 768); err != nil {
		t.Fatalf("grow Resize failed: %v", err)
	}
	if w, h := p.Size(); w != 1024 || h != 768 {
		t.Errorf("size after grow = (%d, %d), want (1024, 768)", w, h)
	}
	if p.glowTex == glowTex {
		t.Error("resize kept stale textures")
	}
}

func TestPipelineDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := New(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err := p.Resize(64, 64); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	p.Destroy()
	if p.glowTex != nil || p.extractPipe != nil || p.sampler != nil {
		t.Error("Destroy left resources")
	}
	if w, h := p.Size(); w != 0 || h != 0 {
		t.Errorf("size after Destroy = (%d, %d), want (0, 0)", w, h)
	}

	// Safe to call again, and on a never-initialized pipeline.
	p.Destroy()
	New(device, queue, gputypes.TextureFormatBGRA8Unorm).Destroy()
}

func TestPipelineRenderInactiveParams(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := New(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer p.Destroy()

	params := glow.DefaultParams()
	params.Strength = 0
	if err := p.Render(nil, nil, 64, 64, params); err != nil {
		t.Errorf("inactive render failed: %v", err)
	}
	// The skip happens before any resource allocation.
	if w, h := p.Size(); w != 0 || h != 0 {
		t.Error("inactive render allocated resources")
	}
}

func TestPipelineRender(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := New(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer p.Destroy()

	// Frame texture standing in for the host's render target.
	frameTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_frame",
		Size:          hal.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		t.Fatalf("create frame texture: %v", err)
	}
	defer device.DestroyTexture(frameTex)

	frameView, err := device.CreateTextureView(frameTex, &hal.TextureViewDescriptor{
		Label:         "test_frame_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Fatalf("create frame view: %v", err)
	}
	defer device.DestroyTextureView(frameView)

	params := glow.DefaultParams()
	params.AnimationEnabled = true
	params.AnimationType = glow.AnimationPulseShimmer
	params.TimeMS = 1500
	if err := p.Render(frameView, frameView, 64, 64, params); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if w, h := p.Size(); w != 64 || h != 64 {
		t.Errorf("size after render = (%d, %d), want (64, 64)", w, h)
	}

	// A second frame reuses the allocated resources.
	params.TimeMS = 1516
	if err := p.Render(frameView, frameView, 64, 64, params); err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
}

func TestMakeGlowUniform(t *testing.T) {
	params := glow.Params{
		Radius:           3.5,
		Threshold:        0.6,
		Strength:         0.8,
		ColorBoost:       1.2,
		TimeMS:           123456,
		AnimationEnabled: true,
		AnimationType:    glow.AnimationShimmer,
		AnimationSpeed:   2.0,
	}
	buf := makeGlowUniform(params)
	if len(buf) != glowUniformSize {
		t.Fatalf("uniform size = %d, want %d", len(buf), glowUniformSize)
	}

	f32At := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	u32At := func(off int) uint32 {
		return binary.LittleEndian.Uint32(buf[off:])
	}

	if got := f32At(0); got != 3.5 {
		t.Errorf("radius = %v", got)
	}
	if got := f32At(4); got != 0.6 {
		t.Errorf("threshold = %v", got)
	}
	if got := f32At(8); got != 0.8 {
		t.Errorf("strength = %v", got)
	}
	if got := f32At(12); got != 1.2 {
		t.Errorf("color_boost = %v", got)
	}
	if got := u32At(16); got != 123456 {
		t.Errorf("time_ms = %d", got)
	}
	if got := u32At(20); got != 1 {
		t.Errorf("animation_enabled = %d", got)
	}
	if got := u32At(24); got != uint32(glow.AnimationShimmer) {
		t.Errorf("animation_type = %d", got)
	}
	if got := f32At(28); got != 2.0 {
		t.Errorf("animation_speed = %v", got)
	}

	// Disabled animation serializes as zero.
	params.AnimationEnabled = false
	if got := binary.LittleEndian.Uint32(makeGlowUniform(params)[20:]); got != 0 {
		t.Errorf("disabled animation_enabled = %d, want 0", got)
	}
}
