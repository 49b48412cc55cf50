package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// quadVertexStride is the byte stride per vertex. The layout matches
// the host's shared quad vertex format so one buffer description works
// across glow and non-glow pipelines:
//
//	position  (vec2<f32>) =  8 bytes (location 0)
//	tex       (vec2<f32>) =  8 bytes (location 1)
//	fg_color  (vec4<f32>) = 16 bytes (location 2)
//	alt_color (vec4<f32>) = 16 bytes (location 3)
//	hsv       (vec3<f32>) = 12 bytes (location 4)
//	has_color (f32)       =  4 bytes (location 5)
//	mix_value (f32)       =  4 bytes (location 6)
//
// Total = 68 bytes per vertex. Only position and tex are read by the
// glow entry points; the rest stay zero.
const quadVertexStride = 68

// quadVertexCount is two triangles covering the full viewport.
const quadVertexCount = 6

func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // tex
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // fg_color
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3}, // alt_color
				{Format: gputypes.VertexFormatFloat32x3, Offset: 48, ShaderLocation: 4}, // hsv
				{Format: gputypes.VertexFormatFloat32, Offset: 60, ShaderLocation: 5},   // has_color
				{Format: gputypes.VertexFormatFloat32, Offset: 64, ShaderLocation: 6},   // mix_value
			},
		},
	}
}

// buildQuadVertices generates the fullscreen quad. Positions are NDC;
// texture coordinates are flipped vertically so texel (0,0) maps to the
// top-left of the render target.
func buildQuadVertices() []byte {
	// x, y, u, v per corner; two triangles sharing the diagonal.
	corners := [quadVertexCount][4]float32{
		{-1, -1, 0, 1},
		{1, -1, 1, 1},
		{1, 1, 1, 0},
		{-1, -1, 0, 1},
		{1, 1, 1, 0},
		{-1, 1, 0, 0},
	}

	buf := make([]byte, quadVertexCount*quadVertexStride)
	for i, c := range corners {
		off := i * quadVertexStride
		for j, v := range c {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v))
		}
		// Remaining attributes stay zero.
	}
	return buf
}
