package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/glow.wgsl
var glowShaderSource string

// Shader entry point names in shaders/glow.wgsl.
const (
	entryVertex    = "vs_main"
	entryExtract   = "fs_extract"
	entryBlurH     = "fs_blur_h"
	entryBlurV     = "fs_blur_v"
	entryComposite = "fs_composite"
)

// CompileShaderSPIRV compiles the embedded glow shader to SPIR-V words
// via naga. Backends that consume WGSL directly don't need this; it
// exists for SPIR-V-only backends and for validating the shader at
// test time without a device.
func CompileShaderSPIRV() ([]uint32, error) {
	if glowShaderSource == "" {
		return nil, errors.New("glow shader source is empty")
	}

	spirvBytes, err := naga.Compile(glowShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile glow shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V output length %d not word-aligned", len(spirvBytes))
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
