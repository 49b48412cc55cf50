// Package glow implements a neon glow (bloom) post-processing effect for
// the GoGPU ecosystem.
//
// # Overview
//
// The effect brightens the surroundings of high-luminance regions in a
// rendered frame. It runs as a fixed four-pass pipeline:
//
//  1. Extract - isolate pixels above a luminance threshold
//  2. Blur H - 9-tap separable Gaussian blur along X
//  3. Blur V - 9-tap separable Gaussian blur along Y
//  4. Composite - scale the blurred glow by an (optionally animated)
//     strength factor and add it back onto the frame
//
// # Quick Start
//
//	import "github.com/gogpu/glow"
//
//	frame := glow.FromImage(img)
//	effect := glow.NewEffect(frame.Width(), frame.Height())
//	params := glow.DefaultParams()
//	if err := effect.Render(frame, params); err != nil {
//	    log.Fatal(err)
//	}
//
// # CPU and GPU paths
//
// The root package is the CPU reference implementation: pure float32 pixel
// math that mirrors the WGSL shader pass for pass. It is the ground truth
// the numeric tests run against, and a usable software fallback.
//
// The gpu subpackage runs the same four passes on a WebGPU device via
// gogpu/wgpu, compiling the embedded WGSL shader with gogpu/naga. Both
// paths read the same Params block, so a host can switch between them
// without changing tuning.
//
// # Parameters
//
// All four passes share one immutable Params value per frame. The host
// constructs it from user configuration plus an elapsed-time clock and
// submits it before the chain runs; nothing inside the effect mutates it.
// See Params for field semantics and Config for the YAML representation.
package glow

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
