package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Embedded cell shader source.
//
//go:embed shaders/cell.wgsl
var cellShaderSource string

// Vertex strides. Solid quads carry position (vec2<f32>) and color
// (vec4<f32>); glyph quads add tex_coord (vec2<f32>) between them.
const (
	solidVertexStride = 24
	glyphVertexStride = 32
)

// targetFormat is the color format both pipelines render into.
const targetFormat = gputypes.TextureFormatBGRA8Unorm

// cellPipeline holds the GPU objects shared by every frame: the compiled
// cell shader, the bind group layout (uniforms + atlas texture + sampler),
// and the two render pipelines.
//
// The renderer owns per-frame buffers and bind groups; cellPipeline owns
// only frame-independent state.
type cellPipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler

	// solid draws backgrounds and underlines, glyph draws atlas quads.
	solid hal.RenderPipeline
	glyph hal.RenderPipeline
}

func newCellPipeline(device hal.Device) (*cellPipeline, error) {
	p := &cellPipeline{device: device}
	if err := p.create(); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *cellPipeline) create() error {
	if cellShaderSource == "" {
		return fmt.Errorf("render: cell shader source is empty")
	}

	shader, err := compileShader(p.device, "cell_shader", cellShaderSource)
	if err != nil {
		return err
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: Uniforms (uniform buffer, vertex+fragment)
	//   Binding 1: atlas texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "cell_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create cell bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "cell_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("render: create cell pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	// Glyph quads are drawn 1:1 with atlas texels, so linear filtering
	// degenerates to nearest while staying safe under fractional scroll.
	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "cell_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("render: create cell sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()

	solid, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "cell_solid_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_solid",
			Buffers:    solidVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_solid",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     &premulBlend,
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
		return fmt.Errorf("render: create solid pipeline: %w", err)
	}
	p.solid = solid

	glyph, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "cell_glyph_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_glyph",
			Buffers:    glyphVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_glyph",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     &premulBlend,
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
		return fmt.Errorf("render: create glyph pipeline: %w", err)
	}
	p.glyph = glyph

	return nil
}

// solidVertexLayout matches SolidInput in cell.wgsl.
func solidVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: solidVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// glyphVertexLayout matches GlyphInput in cell.wgsl.
func glyphVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: glyphVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // tex_coord
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// destroy releases pipeline resources in reverse creation order. Safe to
// call on a partially constructed pipeline.
func (p *cellPipeline) destroy() {
	if p.device == nil {
		return
	}
	if p.glyph != nil {
		p.device.DestroyRenderPipeline(p.glyph)
		p.glyph = nil
	}
	if p.solid != nil {
		p.device.DestroyRenderPipeline(p.solid)
		p.solid = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
