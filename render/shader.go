package render

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// compileShader compiles WGSL source to SPIR-V and creates a HAL shader
// module from it.
func compileShader(device hal.Device, label, source string) (hal.ShaderModule, error) {
	// Compile WGSL to SPIR-V bytes.
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("render: compile %s: %w", label, err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirvCode,
		},
	})
}
