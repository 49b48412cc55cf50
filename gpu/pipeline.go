package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glow"
)

// glowUniformSize is the byte size of the GlowUniform block:
// four f32 tuning fields, three u32 animation fields, one f32 speed.
const glowUniformSize = 32

// intermediateFormat is the format of the two ping-pong render targets
// the passes chain through.
const intermediateFormat = gputypes.TextureFormatRGBA8Unorm

// gpuWaitTimeout bounds the fence wait after submission.
const gpuWaitTimeout = 5 * time.Second

// Pipeline owns the GPU resources for the four-pass glow chain: one
// shader module with all entry points, four render pipelines, a shared
// fullscreen quad, and two intermediate textures sized to the frame.
//
// The chain renders extract into the first intermediate, ping-pongs the
// two blur passes across both, and composites additively onto the
// caller's target. A Pipeline is not safe for concurrent use.
type Pipeline struct {
	device hal.Device
	queue  hal.Queue

	// targetFormat is the color format of the final composite target,
	// typically the surface format.
	targetFormat gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	textureLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout

	extractPipe   hal.RenderPipeline
	blurHPipe     hal.RenderPipeline
	blurVPipe     hal.RenderPipeline
	compositePipe hal.RenderPipeline

	sampler     hal.Sampler
	uniformBuf  hal.Buffer
	quadBuf     hal.Buffer
	uniformBind hal.BindGroup

	// Ping-pong targets: extract writes glowTex, blur-H reads it into
	// scratchTex, blur-V reads that back into glowTex, composite reads
	// glowTex.
	glowTex     hal.Texture
	glowView    hal.TextureView
	scratchTex  hal.Texture
	scratchView hal.TextureView
	glowBind    hal.BindGroup
	scratchBind hal.BindGroup

	width, height uint32
}

// New creates a glow pipeline for the given device and queue. The
// composite pass targets textures of targetFormat; intermediate
// resources are created lazily on first render.
func New(device hal.Device, queue hal.Queue, targetFormat gputypes.TextureFormat) *Pipeline {
	return &Pipeline{
		device:       device,
		queue:        queue,
		targetFormat: targetFormat,
	}
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *Pipeline) Destroy() {
	p.destroyTextures()
	p.destroyPipeline()
}

// Size returns the current intermediate texture dimensions.
func (p *Pipeline) Size() (uint32, uint32) {
	return p.width, p.height
}

// Render runs the four passes: source is the frame texture to read,
// target is the view the glow is additively blended onto (normally a
// view of the same frame texture). Inactive parameters skip the chain.
// The call blocks until the GPU finishes.
func (p *Pipeline) Render(source, target hal.TextureView, width, height uint32, params glow.Params) error {
	if !params.Active() {
		return nil
	}
	if err := p.ensureReady(width, height); err != nil {
		return err
	}

	p.queue.WriteBuffer(p.uniformBuf, 0, makeGlowUniform(params))

	sourceBind, err := p.createTextureBind("glow_source_bind", source)
	if err != nil {
		return fmt.Errorf("create source bind group: %w", err)
	}
	defer p.device.DestroyBindGroup(sourceBind)

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "glow_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("glow"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	p.RecordPasses(encoder, sourceBind, target)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := p.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	slogger().Debug("glow: gpu frame rendered",
		"width", width, "height", height, "time_ms", params.TimeMS)
	return nil
}

// RecordPasses records the four render passes into an existing encoder.
// sourceBind is a texture bind group reading the frame; target receives
// the additive composite. Resources must be ready (ensureReady) and the
// uniform buffer current before calling.
func (p *Pipeline) RecordPasses(encoder hal.CommandEncoder, sourceBind hal.BindGroup, target hal.TextureView) {
	// The intermediate passes replace their target contents; only the
	// final composite loads the existing frame and adds onto it.
	p.encodePass(encoder, "glow_extract", p.glowView, gputypes.LoadOpClear, p.extractPipe, sourceBind)
	p.encodePass(encoder, "glow_blur_h", p.scratchView, gputypes.LoadOpClear, p.blurHPipe, p.glowBind)
	p.encodePass(encoder, "glow_blur_v", p.glowView, gputypes.LoadOpClear, p.blurVPipe, p.scratchBind)
	p.encodePass(encoder, "glow_composite", target, gputypes.LoadOpLoad, p.compositePipe, p.glowBind)
}

func (p *Pipeline) encodePass(
	encoder hal.CommandEncoder, label string, view hal.TextureView,
	loadOp gputypes.LoadOp, pipeline hal.RenderPipeline, texBind hal.BindGroup,
) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     loadOp,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
	})
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, p.uniformBind, nil)
	rp.SetBindGroup(1, texBind, nil)
	rp.SetVertexBuffer(0, p.quadBuf, 0)
	rp.Draw(quadVertexCount, 1, 0, 0)
	rp.End()
}

// ensureReady creates the pipeline objects and (re)creates textures for
// the requested frame size.
func (p *Pipeline) ensureReady(w, h uint32) error {
	if p.extractPipe == nil {
		if err := p.createPipeline(); err != nil {
			return fmt.Errorf("create pipeline: %w", err)
		}
	}
	if err := p.ensureTextures(w, h); err != nil {
		return fmt.Errorf("ensure textures: %w", err)
	}
	return nil
}

// Resize recreates the intermediate textures for a new frame size.
// Called automatically by Render; exposed for hosts that want to
// pre-allocate during their own resize handling.
func (p *Pipeline) Resize(w, h uint32) error {
	return p.ensureReady(w, h)
}

func (p *Pipeline) ensureTextures(w, h uint32) error {
	if p.width == w && p.height == h && p.glowTex != nil {
		return nil
	}
	p.destroyTextures()

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	usage := gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding

	for _, t := range []struct {
		label string
		tex   *hal.Texture
		view  *hal.TextureView
		bind  *hal.BindGroup
	}{
		{"glow_glow", &p.glowTex, &p.glowView, &p.glowBind},
		{"glow_scratch", &p.scratchTex, &p.scratchView, &p.scratchBind},
	} {
		tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
			Label:         t.label,
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        intermediateFormat,
			Usage:         usage,
		})
		if err != nil {
			p.destroyTextures()
			return fmt.Errorf("create %s texture: %w", t.label, err)
		}
		*t.tex = tex

		view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label:         t.label + "_view",
			Format:        intermediateFormat,
			Dimension:     gputypes.TextureViewDimension2D,
			Aspect:        gputypes.TextureAspectAll,
			MipLevelCount: 1,
		})
		if err != nil {
			p.destroyTextures()
			return fmt.Errorf("create %s view: %w", t.label, err)
		}
		*t.view = view

		bind, err := p.createTextureBind(t.label+"_bind", view)
		if err != nil {
			p.destroyTextures()
			return fmt.Errorf("create %s bind group: %w", t.label, err)
		}
		*t.bind = bind
	}

	p.width = w
	p.height = h
	return nil
}

// createTextureBind builds a group(1) bind group sampling the given
// view with the shared linear clamp sampler.
func (p *Pipeline) createTextureBind(label string, view hal.TextureView) (hal.BindGroup, error) {
	return p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: p.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		},
	})
}

// createPipeline compiles the glow shader and creates the four render
// pipelines plus the shared sampler, uniform buffer, and quad buffer.
func (p *Pipeline) createPipeline() error {
	if glowShaderSource == "" {
		return fmt.Errorf("glow shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glow_shader",
		Source: hal.ShaderSource{WGSL: glowShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile glow shader: %w", err)
	}
	p.shader = shader

	// Bind group layouts:
	//   group 0, binding 0: GlowUniform (uniform buffer, fragment)
	//   group 1, binding 0: input texture (texture_2d, fragment)
	//   group 1, binding 1: sampler (fragment)
	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glow_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	textureLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glow_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture layout: %w", err)
	}
	p.textureLayout = textureLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glow_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	// Linear clamp sampler: blur taps outside [0,1] clamp to the edge
	// texel, matching the CPU path's default address mode.
	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glow_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	p.sampler = sampler

	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glow_uniform",
		Size:  glowUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	quadData := buildQuadVertices()
	quadBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glow_quad",
		Size:  uint64(len(quadData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create quad buffer: %w", err)
	}
	p.quadBuf = quadBuf
	p.queue.WriteBuffer(quadBuf, 0, quadData)

	uniformBind, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glow_uniform_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: glowUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform bind group: %w", err)
	}
	p.uniformBind = uniformBind

	// Intermediate passes overwrite their target (no blend); the
	// composite pass adds onto the existing frame.
	additive := gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		},
	}

	passes := []struct {
		label  string
		entry  string
		format gputypes.TextureFormat
		blend  *gputypes.BlendState
		out    *hal.RenderPipeline
	}{
		{"glow_extract_pipeline", entryExtract, intermediateFormat, nil, &p.extractPipe},
		{"glow_blur_h_pipeline", entryBlurH, intermediateFormat, nil, &p.blurHPipe},
		{"glow_blur_v_pipeline", entryBlurV, intermediateFormat, nil, &p.blurVPipe},
		{"glow_composite_pipeline", entryComposite, p.targetFormat, &additive, &p.compositePipe},
	}
	for _, pass := range passes {
		pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  pass.label,
			Layout: p.pipeLayout,
			Vertex: hal.VertexState{
				Module:     p.shader,
				EntryPoint: entryVertex,
				Buffers:    quadVertexLayout(),
			},
			Fragment: &hal.FragmentState{
				Module:     p.shader,
				EntryPoint: pass.entry,
				Targets: []gputypes.ColorTargetState{
					{
						Format:    pass.format,
						Blend:     pass.blend,
						WriteMask: gputypes.ColorWriteMaskAll,
					},
				},
			},
			Primitive: gputypes.PrimitiveState{
				Topology: gputypes.PrimitiveTopologyTriangleList,
				CullMode: gputypes.CullModeNone,
			},
			Multisample: gputypes.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", pass.label, err)
		}
		*pass.out = pipeline
	}

	slogger().Info("glow: gpu pipeline created", "target_format", p.targetFormat)
	return nil
}

// makeGlowUniform serializes Params into the GlowUniform layout.
func makeGlowUniform(params glow.Params) []byte {
	buf := make([]byte, glowUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(params.Radius))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(params.Threshold))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(params.Strength))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(params.ColorBoost))
	binary.LittleEndian.PutUint32(buf[16:20], params.TimeMS)
	var enabled uint32
	if params.AnimationEnabled {
		enabled = 1
	}
	binary.LittleEndian.PutUint32(buf[20:24], enabled)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(params.AnimationType))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(params.AnimationSpeed))
	return buf
}

// destroyTextures releases the intermediate textures, views, and bind
// groups and resets dimensions.
func (p *Pipeline) destroyTextures() {
	if p.device == nil {
		return
	}
	if p.scratchBind != nil {
		p.device.DestroyBindGroup(p.scratchBind)
		p.scratchBind = nil
	}
	if p.glowBind != nil {
		p.device.DestroyBindGroup(p.glowBind)
		p.glowBind = nil
	}
	if p.scratchView != nil {
		p.device.DestroyTextureView(p.scratchView)
		p.scratchView = nil
	}
	if p.scratchTex != nil {
		p.device.DestroyTexture(p.scratchTex)
		p.scratchTex = nil
	}
	if p.glowView != nil {
		p.device.DestroyTextureView(p.glowView)
		p.glowView = nil
	}
	if p.glowTex != nil {
		p.device.DestroyTexture(p.glowTex)
		p.glowTex = nil
	}
	p.width = 0
	p.height = 0
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (p *Pipeline) destroyPipeline() {
	if p.device == nil {
		return
	}
	for _, pipe := range []*hal.RenderPipeline{
		&p.compositePipe, &p.blurVPipe, &p.blurHPipe, &p.extractPipe,
	} {
		if *pipe != nil {
			p.device.DestroyRenderPipeline(*pipe)
			*pipe = nil
		}
	}
	if p.uniformBind != nil {
		p.device.DestroyBindGroup(p.uniformBind)
		p.uniformBind = nil
	}
	if p.quadBuf != nil {
		p.device.DestroyBuffer(p.quadBuf)
		p.quadBuf = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.textureLayout != nil {
		p.device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
