//go:build !nogpu

package render

import (
	"strings"
	"testing"
)

func TestNewCellPipeline(t *testing.T) {
	dev := openNoopDevice(t)

	p, err := newCellPipeline(dev.device)
	if err != nil {
		t.Fatalf("newCellPipeline failed: %v", err)
	}
	if p.shader == nil {
		t.Error("expected non-nil shader module")
	}
	if p.bindLayout == nil {
		t.Error("expected non-nil bind group layout")
	}
	if p.pipeLayout == nil {
		t.Error("expected non-nil pipeline layout")
	}
	if p.sampler == nil {
		t.Error("expected non-nil sampler")
	}
	if p.solid == nil {
		t.Error("expected non-nil solid pipeline")
	}
	if p.glyph == nil {
		t.Error("expected non-nil glyph pipeline")
	}

	p.destroy()

	// Double-destroy should be safe.
	p.destroy()
}

func TestCompileCellShader(t *testing.T) {
	dev := openNoopDevice(t)

	module, err := compileShader(dev.device, "cell_shader_test", cellShaderSource)
	if err != nil {
		t.Fatalf("compiling cell.wgsl failed: %v", err)
	}
	if module == nil {
		t.Fatal("expected non-nil shader module")
	}
	dev.device.DestroyShaderModule(module)
}

func TestCellShaderStructure(t *testing.T) {
	for _, want := range []string{
		"@group(0) @binding(0)",
		"@group(0) @binding(1)",
		"@group(0) @binding(2)",
		"@vertex",
		"@fragment",
		"fn vs_solid",
		"fn fs_solid",
		"fn vs_glyph",
		"fn fs_glyph",
		"textureSample",
	} {
		if !strings.Contains(cellShaderSource, want) {
			t.Errorf("cell.wgsl is missing %q", want)
		}
	}
}

func TestVertexLayouts(t *testing.T) {
	solid := solidVertexLayout()
	if len(solid) != 1 {
		t.Fatalf("expected 1 solid vertex buffer layout, got %d", len(solid))
	}
	if solid[0].ArrayStride != solidVertexStride {
		t.Errorf("solid stride = %d, want %d", solid[0].ArrayStride, solidVertexStride)
	}
	if len(solid[0].Attributes) != 2 {
		t.Errorf("solid attributes = %d, want 2", len(solid[0].Attributes))
	}

	glyphL := glyphVertexLayout()
	if glyphL[0].ArrayStride != glyphVertexStride {
		t.Errorf("glyph stride = %d, want %d", glyphL[0].ArrayStride, glyphVertexStride)
	}
	if len(glyphL[0].Attributes) != 3 {
		t.Errorf("glyph attributes = %d, want 3", len(glyphL[0].Attributes))
	}
	for i, attr := range glyphL[0].Attributes {
		if attr.ShaderLocation != uint32(i) { //nolint:gosec // small loop index
			t.Errorf("glyph attribute %d bound to location %d", i, attr.ShaderLocation)
		}
	}
}
