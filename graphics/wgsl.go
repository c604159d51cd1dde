package graphics

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// GLSLVersion is the GLSL dialect WGSL shaders are translated to. It matches
// the 4.1 core context the OpenGL driver creates.
var GLSLVersion = glsl.Version410

// ShaderFromWGSL translates the named entry points of a WGSL module to GLSL
// and builds a shader from the result. Pass nil for a stage to skip it.
func ShaderFromWGSL(source string, vertexEntry, fragmentEntry *string) (*Shader, error) {
	module, err := lowerWGSL(source)
	if err != nil {
		return nil, err
	}

	vert, err := translateStage(module, vertexEntry)
	if err != nil {
		return nil, fmt.Errorf("vertex entry point: %w", err)
	}
	frag, err := translateStage(module, fragmentEntry)
	if err != nil {
		return nil, fmt.Errorf("fragment entry point: %w", err)
	}
	return ShaderFromMemory(vert, frag)
}

func lowerWGSL(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("wgsl: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("wgsl: %w", err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("wgsl: %w", err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("wgsl: validation failed: %w", &verrs[0])
	}
	return module, nil
}

func translateStage(module *ir.Module, entry *string) (*string, error) {
	if entry == nil {
		return nil, nil
	}
	src, _, err := glsl.Compile(module, glsl.Options{
		LangVersion: GLSLVersion,
		EntryPoint:  *entry,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", *entry, err)
	}
	return &src, nil
}
