package opengl

import (
	"fmt"
	"os"
	"slices"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"sfbind/internal/native"
)

// program is a linked GL program and the texture slots set on it.
type program struct {
	id uint32
	// textures maps sampler locations to texture names, bound to units
	// 1..n on ShaderBind. Unit 0 belongs to the current texture.
	textures map[int32]uint32
	// current is the location of the current-texture sampler, or -1.
	current int32
}

func (d *Driver) ShaderCreateFromFile(vertexPath, fragmentPath native.Str) native.Handle {
	vert, err := readStage(vertexPath)
	if err != nil {
		Logger().Warn("failed to open vertex shader file", zap.String("path", vertexPath.String()), zap.Error(err))
		return native.Null
	}
	frag, err := readStage(fragmentPath)
	if err != nil {
		Logger().Warn("failed to open fragment shader file", zap.String("path", fragmentPath.String()), zap.Error(err))
		return native.Null
	}
	return d.ShaderCreateFromMemory(vert, frag)
}

func readStage(path native.Str) (native.Str, error) {
	if path.IsNull() {
		return nil, nil
	}
	data, err := os.ReadFile(path.String())
	if err != nil {
		return nil, err
	}
	return native.CStr(string(data))
}

func (d *Driver) ShaderCreateFromMemory(vertexSrc, fragmentSrc native.Str) native.Handle {
	if !d.ShaderIsAvailable().Go() {
		Logger().Warn("shaders are not supported by this system")
		return native.Null
	}
	id, err := newProgram(vertexSrc, fragmentSrc)
	if err != nil {
		Logger().Warn("failed to build shader", zap.Error(err))
		return native.Null
	}
	d.programs[id] = &program{
		id:       id,
		textures: make(map[int32]uint32),
		current:  -1,
	}
	return native.Handle(id)
}

func (d *Driver) ShaderDestroy(h native.Handle) {
	p, ok := d.programs[uint32(h)]
	if !ok {
		return
	}
	gl.DeleteProgram(p.id)
	delete(d.programs, p.id)
}

// uniform resolves a parameter name. Unknown names are logged and dropped.
func (d *Driver) uniform(h native.Handle, name native.Str) (*program, int32, bool) {
	p, ok := d.programs[uint32(h)]
	if !ok {
		return nil, -1, false
	}
	loc := gl.GetUniformLocation(p.id, &name[0])
	if loc == -1 {
		Logger().Debug("parameter not found in shader", zap.String("name", name.String()), zap.Uint32("program", p.id))
		return nil, -1, false
	}
	return p, loc, true
}

// set runs fn with p as the current program, then restores the previous one.
func (d *Driver) set(h native.Handle, name native.Str, fn func(loc int32)) {
	p, loc, ok := d.uniform(h, name)
	if !ok {
		return
	}
	var prev int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &prev)
	gl.UseProgram(p.id)
	fn(loc)
	gl.UseProgram(uint32(prev))
}

func (d *Driver) ShaderSetFloatParameter(h native.Handle, name native.Str, x float32) {
	d.set(h, name, func(loc int32) { gl.Uniform1f(loc, x) })
}

func (d *Driver) ShaderSetFloat2Parameter(h native.Handle, name native.Str, x, y float32) {
	d.set(h, name, func(loc int32) { gl.Uniform2f(loc, x, y) })
}

func (d *Driver) ShaderSetFloat3Parameter(h native.Handle, name native.Str, x, y, z float32) {
	d.set(h, name, func(loc int32) { gl.Uniform3f(loc, x, y, z) })
}

func (d *Driver) ShaderSetFloat4Parameter(h native.Handle, name native.Str, x, y, z, w float32) {
	d.set(h, name, func(loc int32) { gl.Uniform4f(loc, x, y, z, w) })
}

func (d *Driver) ShaderSetColorParameter(h native.Handle, name native.Str, r, g, b, a uint8) {
	d.set(h, name, func(loc int32) {
		gl.Uniform4f(loc, float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255)
	})
}

func (d *Driver) ShaderSetTextureParameter(h native.Handle, name native.Str, tex native.Handle) {
	p, loc, ok := d.uniform(h, name)
	if !ok {
		return
	}
	if _, set := p.textures[loc]; !set && int32(len(p.textures)+1) >= d.maxTextureUnits {
		Logger().Warn("all texture units are in use", zap.String("name", name.String()), zap.Int32("units", d.maxTextureUnits))
		return
	}
	p.textures[loc] = uint32(tex)
	if p.current == loc {
		p.current = -1
	}
}

func (d *Driver) ShaderSetCurrentTextureParameter(h native.Handle, name native.Str) {
	p, loc, ok := d.uniform(h, name)
	if !ok {
		return
	}
	delete(p.textures, loc)
	p.current = loc
}

func (d *Driver) ShaderBind(h native.Handle) {
	p, ok := d.programs[uint32(h)]
	if !ok {
		return
	}
	gl.UseProgram(p.id)

	locs := make([]int32, 0, len(p.textures))
	for loc := range p.textures {
		locs = append(locs, loc)
	}
	slices.Sort(locs)
	for i, loc := range locs {
		unit := int32(i + 1)
		gl.Uniform1i(loc, unit)
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, p.textures[loc])
	}
	gl.ActiveTexture(gl.TEXTURE0)

	if p.current != -1 {
		gl.Uniform1i(p.current, 0)
	}
}

func (d *Driver) ShaderIsAvailable() native.Bool {
	return native.BoolOf(d.glslVersion != "")
}

// ── shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc native.Str) (uint32, error) {
	stages := []struct {
		name string
		src  native.Str
		typ  uint32
	}{
		{"vertex", vertSrc, gl.VERTEX_SHADER},
		{"fragment", fragSrc, gl.FRAGMENT_SHADER},
	}

	prog := gl.CreateProgram()
	var attached []uint32
	for _, st := range stages {
		if st.src.IsNull() {
			continue
		}
		shader, err := compileShader(st.src, st.typ)
		if err != nil {
			for _, s := range attached {
				gl.DeleteShader(s)
			}
			gl.DeleteProgram(prog)
			return 0, fmt.Errorf("%s: %w", st.name, err)
		}
		gl.AttachShader(prog, shader)
		attached = append(attached, shader)
	}
	gl.LinkProgram(prog)

	// Attached shaders are only flagged; they go away with the program.
	for _, s := range attached {
		gl.DeleteShader(s)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src native.Str, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(string(src))
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
