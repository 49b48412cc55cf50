package gpu

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestQuadVertexLayout(t *testing.T) {
	layouts := quadVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 vertex buffer layout, got %d", len(layouts))
	}
	layout := layouts[0]
	if layout.ArrayStride != quadVertexStride {
		t.Errorf("stride = %d, want %d", layout.ArrayStride, quadVertexStride)
	}
	if len(layout.Attributes) != 7 {
		t.Fatalf("expected 7 attributes, got %d", len(layout.Attributes))
	}
	// Shader locations are contiguous and offsets monotonically increase.
	var prevOffset uint64
	for i, attr := range layout.Attributes {
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d has shader location %d", i, attr.ShaderLocation)
		}
		if i > 0 && attr.Offset <= prevOffset {
			t.Errorf("attribute %d offset %d not after %d", i, attr.Offset, prevOffset)
		}
		prevOffset = attr.Offset
	}
}

func TestBuildQuadVertices(t *testing.T) {
	data := buildQuadVertices()
	if len(data) != quadVertexCount*quadVertexStride {
		t.Fatalf("vertex data length %d, want %d", len(data), quadVertexCount*quadVertexStride)
	}

	readF32 := func(vertex, field int) float32 {
		off := vertex*quadVertexStride + field*4
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}

	// First vertex: bottom-left NDC, tex coords flipped vertically.
	if x, y := readF32(0, 0), readF32(0, 1); x != -1 || y != -1 {
		t.Errorf("vertex 0 position = (%v, %v), want (-1, -1)", x, y)
	}
	if u, v := readF32(0, 2), readF32(0, 3); u != 0 || v != 1 {
		t.Errorf("vertex 0 tex = (%v, %v), want (0, 1)", u, v)
	}

	// All positions stay in NDC and all tex coords in [0, 1].
	for i := 0; i < quadVertexCount; i++ {
		for f := 0; f < 2; f++ {
			if p := readF32(i, f); p < -1 || p > 1 {
				t.Errorf("vertex %d position component %v outside NDC", i, p)
			}
		}
		for f := 2; f < 4; f++ {
			if c := readF32(i, f); c < 0 || c > 1 {
				t.Errorf("vertex %d tex component %v outside [0, 1]", i, c)
			}
		}
		// Compatibility attributes are zeroed.
		for f := 4; f < quadVertexStride/4; f++ {
			if c := readF32(i, f); c != 0 {
				t.Errorf("vertex %d field %d = %v, want 0", i, f, c)
			}
		}
	}
}
