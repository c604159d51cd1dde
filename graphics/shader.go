package graphics

import (
	"errors"
	"fmt"

	"sfbind/internal/handle"
	"sfbind/internal/native"
	"sfbind/math"
)

// ErrShaderCreate is returned when the native layer cannot build a shader.
var ErrShaderCreate = errors.New("graphics: native shader creation failed")

// Shader is a GLSL program made of an optional vertex and an optional
// fragment stage.
//
// Parameters are set by name. The native layer does not report unknown names
// or mismatched types; such calls are silently ignored.
type Shader struct {
	h handle.Owned
	// textures holds a reference to every texture currently set, by slot name.
	textures map[string]*Texture
}

// ShaderFromFile loads a shader from GLSL source files. Pass nil for a stage
// to skip it.
func ShaderFromFile(vertexPath, fragmentPath *string) (*Shader, error) {
	vert, frag, err := stageStrs(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	drv, err := native.Lookup()
	if err != nil {
		return nil, err
	}
	s := wrapShader(drv.ShaderCreateFromFile(vert, frag))
	if s == nil {
		return nil, fmt.Errorf("%w: vertex=%s fragment=%s", ErrShaderCreate, describe(vertexPath), describe(fragmentPath))
	}
	return s, nil
}

// ShaderFromMemory builds a shader from GLSL source code. Pass nil for a
// stage to skip it.
func ShaderFromMemory(vertexSrc, fragmentSrc *string) (*Shader, error) {
	vert, frag, err := stageStrs(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	drv, err := native.Lookup()
	if err != nil {
		return nil, err
	}
	s := wrapShader(drv.ShaderCreateFromMemory(vert, frag))
	if s == nil {
		return nil, ErrShaderCreate
	}
	return s, nil
}

func stageStrs(vertex, fragment *string) (native.Str, native.Str, error) {
	vert, err := native.OptStr(vertex)
	if err != nil {
		return nil, nil, fmt.Errorf("vertex shader: %w", err)
	}
	frag, err := native.OptStr(fragment)
	if err != nil {
		return nil, nil, fmt.Errorf("fragment shader: %w", err)
	}
	return vert, frag, nil
}

func describe(s *string) string {
	if s == nil {
		return "<none>"
	}
	return *s
}

// wrapShader takes ownership of h. It returns nil for the null handle.
func wrapShader(h native.Handle) *Shader {
	if h.IsNull() {
		return nil
	}
	return &Shader{
		h:        handle.Wrap(h, native.Default().ShaderDestroy),
		textures: make(map[string]*Texture),
	}
}

func (s *Shader) unwrap() native.Handle { return s.h.Unwrap() }

// IsShaderAvailable reports whether the system supports shaders. Check it
// before creating any shader. Without a usable native layer it reports false.
func IsShaderAvailable() bool {
	drv, err := native.Lookup()
	if err != nil {
		return false
	}
	return drv.ShaderIsAvailable().Go()
}

// name converts a parameter name. Names with an embedded NUL can never match
// a GLSL identifier, so they are dropped like any other unknown name.
func name(n string) (native.Str, bool) {
	c, err := native.CStr(n)
	return c, err == nil
}

// SetFloat changes a float parameter.
func (s *Shader) SetFloat(param string, x float32) {
	h := s.unwrap()
	if n, ok := name(param); ok {
		native.Default().ShaderSetFloatParameter(h, n, x)
	}
}

// SetFloat2 changes a vec2 parameter.
func (s *Shader) SetFloat2(param string, x, y float32) {
	h := s.unwrap()
	if n, ok := name(param); ok {
		native.Default().ShaderSetFloat2Parameter(h, n, x, y)
	}
}

// SetFloat3 changes a vec3 parameter.
func (s *Shader) SetFloat3(param string, x, y, z float32) {
	h := s.unwrap()
	if n, ok := name(param); ok {
		native.Default().ShaderSetFloat3Parameter(h, n, x, y, z)
	}
}

// SetFloat4 changes a vec4 parameter.
func (s *Shader) SetFloat4(param string, x, y, z, w float32) {
	h := s.unwrap()
	if n, ok := name(param); ok {
		native.Default().ShaderSetFloat4Parameter(h, n, x, y, z, w)
	}
}

// SetVec2 changes a vec2 parameter.
func (s *Shader) SetVec2(param string, v math.Vec2) {
	s.SetFloat2(param, v.X, v.Y)
}

// SetVec3 changes a vec3 parameter.
func (s *Shader) SetVec3(param string, v math.Vec3) {
	s.SetFloat3(param, v.X, v.Y, v.Z)
}

// SetColor changes a vec4 parameter. The components are normalized from
// [0, 255] to [0, 1], so Color{255, 127, 0, 255} arrives as
// vec4(1.0, 0.5, 0.0, 1.0).
func (s *Shader) SetColor(param string, c Color) {
	h := s.unwrap()
	if n, ok := name(param); ok {
		native.Default().ShaderSetColorParameter(h, n, c.R, c.G, c.B, c.A)
	}
}

// SetTexture changes a sampler2D parameter. The shader keeps a reference to
// tex until the slot is replaced or the shader is destroyed.
func (s *Shader) SetTexture(param string, tex *Texture) {
	h := s.unwrap()
	n, ok := name(param)
	if !ok {
		return
	}
	native.Default().ShaderSetTextureParameter(h, n, tex.unwrap())

	tex.retain()
	if prev, ok := s.textures[param]; ok {
		prev.release()
	}
	s.textures[param] = tex
}

// SetCurrentTexture maps a sampler2D parameter to the texture of the object
// being drawn, which is only known at draw time.
func (s *Shader) SetCurrentTexture(param string) {
	h := s.unwrap()
	n, ok := name(param)
	if !ok {
		return
	}
	native.Default().ShaderSetCurrentTextureParameter(h, n)

	if prev, ok := s.textures[param]; ok {
		prev.release()
		delete(s.textures, param)
	}
}

// Bind activates the shader for raw OpenGL drawing.
func (s *Shader) Bind() {
	native.Default().ShaderBind(s.unwrap())
}

// Texture returns the texture held in a slot, if any.
func (s *Shader) Texture(param string) (*Texture, bool) {
	t, ok := s.textures[param]
	return t, ok
}

// Destroy releases every texture reference the shader holds, then the
// native shader.
// Calling Destroy again does nothing.
func (s *Shader) Destroy() {
	if !s.h.Live() {
		return
	}
	for param, t := range s.textures {
		t.release()
		delete(s.textures, param)
	}
	s.h.Release()
}
