package gpu

import (
	"strings"
	"testing"
)

func TestShaderSourceEmbedded(t *testing.T) {
	if glowShaderSource == "" {
		t.Fatal("glow shader source is empty")
	}
	for _, entry := range []string{entryVertex, entryExtract, entryBlurH, entryBlurV, entryComposite} {
		if !strings.Contains(glowShaderSource, "fn "+entry) {
			t.Errorf("shader missing entry point %q", entry)
		}
	}
}

func TestShaderConstantsMatchReference(t *testing.T) {
	// The animation rates and luma weights must match the CPU path
	// bit for bit; they define the visual rhythm of the effect.
	for _, want := range []string{
		"2.094395", "8.377580", // pulse and shimmer rates
		"0.2126, 0.7152, 0.0722", // Rec. 709 luma weights
		"max(glow.radius, 0.001)", // sigma floor
	} {
		if !strings.Contains(glowShaderSource, want) {
			t.Errorf("shader missing constant %q", want)
		}
	}
}

func TestCompileShaderSPIRV(t *testing.T) {
	words, err := CompileShaderSPIRV()
	if err != nil {
		// Skip gracefully on known naga limitations.
		errStr := err.Error()
		if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("shader compilation failed: %v", err)
	}

	if len(words) == 0 {
		t.Fatal("empty SPIR-V output")
	}
	// Verify SPIR-V magic number.
	if words[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", words[0])
	}
}
