// Package gpu runs the glow effect on a WebGPU device via gogpu/wgpu.
//
// The package mirrors the CPU reference implementation in the parent
// glow package pass for pass: one embedded WGSL shader module carries
// all four fragment entry points, and Pipeline chains them over a pair
// of intermediate render targets. Both paths consume the same
// glow.Params block, so hosts can switch between them freely.
//
// Logging goes through glow.SetLogger; the package emits no output by
// default.
package gpu
