// Package nativetest provides an in-memory native.Driver that records calls.
package nativetest

import (
	"fmt"
	"strings"

	"sfbind/internal/native"
)

// Call is one recorded driver call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(parts, ", ") + ")"
}

// Texture is a fake native texture.
type Texture struct {
	Width, Height uint32
	Smooth        bool
	Source        string
}

// Shader is a fake native shader.
type Shader struct {
	Vertex, Fragment *string
	Floats           map[string][]float32
	Colors           map[string][4]uint8
	Textures         map[string]native.Handle
	Current          string
	Bound            int
}

// Driver is a recording native.Driver. Factories fail with the null handle
// whenever the matching Fail flag is set.
type Driver struct {
	Available      bool
	FailShaders    bool
	FailTextures   bool
	Desktop        native.VideoMode
	Fullscreen     []native.VideoMode
	AvailableCalls int

	Calls    []Call
	Shaders  map[native.Handle]*Shader
	Textures map[native.Handle]*Texture
	// Destroyed records every handle passed to a destroy entry point.
	Destroyed []native.Handle

	next native.Handle
}

// New returns a driver that supports shaders and reports a single 1920x1080x24
// display.
func New() *Driver {
	desktop := native.VideoMode{Width: 1920, Height: 1080, BitsPerPixel: 24}
	return &Driver{
		Available:  true,
		Desktop:    desktop,
		Fullscreen: []native.VideoMode{desktop},
		Shaders:    make(map[native.Handle]*Shader),
		Textures:   make(map[native.Handle]*Texture),
	}
}

// Install makes d the process-wide driver for the duration of the test.
func (d *Driver) Install(t interface{ Cleanup(func()) }) *Driver {
	t.Cleanup(native.SetDefault(d))
	return d
}

func (d *Driver) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

// LastCall returns the most recent call, or the zero Call.
func (d *Driver) LastCall() Call {
	if len(d.Calls) == 0 {
		return Call{}
	}
	return d.Calls[len(d.Calls)-1]
}

// CallsTo returns every call to op in order.
func (d *Driver) CallsTo(op string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// IsDestroyed reports whether h went through a destroy entry point.
func (d *Driver) IsDestroyed(h native.Handle) bool {
	for _, x := range d.Destroyed {
		if x == h {
			return true
		}
	}
	return false
}

func (d *Driver) alloc() native.Handle {
	d.next++
	return d.next
}

func optional(s native.Str) *string {
	if s.IsNull() {
		return nil
	}
	v := s.String()
	return &v
}

func (d *Driver) newShader(op string, vert, frag native.Str) native.Handle {
	d.record(op, optional(vert), optional(frag))
	if d.FailShaders {
		return native.Null
	}
	h := d.alloc()
	d.Shaders[h] = &Shader{
		Vertex:   optional(vert),
		Fragment: optional(frag),
		Floats:   make(map[string][]float32),
		Colors:   make(map[string][4]uint8),
		Textures: make(map[string]native.Handle),
	}
	return h
}

func (d *Driver) ShaderCreateFromFile(vert, frag native.Str) native.Handle {
	return d.newShader("ShaderCreateFromFile", vert, frag)
}

func (d *Driver) ShaderCreateFromMemory(vert, frag native.Str) native.Handle {
	return d.newShader("ShaderCreateFromMemory", vert, frag)
}

func (d *Driver) ShaderDestroy(h native.Handle) {
	d.record("ShaderDestroy", h)
	d.Destroyed = append(d.Destroyed, h)
	delete(d.Shaders, h)
}

func (d *Driver) setFloats(op string, h native.Handle, name native.Str, v ...float32) {
	args := []any{h, name.String()}
	for _, x := range v {
		args = append(args, x)
	}
	d.record(op, args...)
	if s, ok := d.Shaders[h]; ok {
		s.Floats[name.String()] = v
	}
}

func (d *Driver) ShaderSetFloatParameter(h native.Handle, name native.Str, x float32) {
	d.setFloats("ShaderSetFloatParameter", h, name, x)
}

func (d *Driver) ShaderSetFloat2Parameter(h native.Handle, name native.Str, x, y float32) {
	d.setFloats("ShaderSetFloat2Parameter", h, name, x, y)
}

func (d *Driver) ShaderSetFloat3Parameter(h native.Handle, name native.Str, x, y, z float32) {
	d.setFloats("ShaderSetFloat3Parameter", h, name, x, y, z)
}

func (d *Driver) ShaderSetFloat4Parameter(h native.Handle, name native.Str, x, y, z, w float32) {
	d.setFloats("ShaderSetFloat4Parameter", h, name, x, y, z, w)
}

func (d *Driver) ShaderSetColorParameter(h native.Handle, name native.Str, r, g, b, a uint8) {
	d.record("ShaderSetColorParameter", h, name.String(), r, g, b, a)
	if s, ok := d.Shaders[h]; ok {
		s.Colors[name.String()] = [4]uint8{r, g, b, a}
	}
}

func (d *Driver) ShaderSetTextureParameter(h native.Handle, name native.Str, tex native.Handle) {
	d.record("ShaderSetTextureParameter", h, name.String(), tex)
	if s, ok := d.Shaders[h]; ok {
		s.Textures[name.String()] = tex
	}
}

func (d *Driver) ShaderSetCurrentTextureParameter(h native.Handle, name native.Str) {
	d.record("ShaderSetCurrentTextureParameter", h, name.String())
	if s, ok := d.Shaders[h]; ok {
		delete(s.Textures, name.String())
		s.Current = name.String()
	}
}

func (d *Driver) ShaderBind(h native.Handle) {
	d.record("ShaderBind", h)
	if s, ok := d.Shaders[h]; ok {
		s.Bound++
	}
}

func (d *Driver) ShaderIsAvailable() native.Bool {
	d.AvailableCalls++
	d.record("ShaderIsAvailable")
	return native.BoolOf(d.Available)
}

func (d *Driver) newTexture(op string, src string, w, h uint32) native.Handle {
	d.record(op, src)
	if d.FailTextures {
		return native.Null
	}
	th := d.alloc()
	d.Textures[th] = &Texture{Width: w, Height: h, Source: src}
	return th
}

func (d *Driver) TextureCreateFromFile(path native.Str) native.Handle {
	return d.newTexture("TextureCreateFromFile", path.String(), 1, 1)
}

func (d *Driver) TextureCreateFromMemory(data []byte) native.Handle {
	return d.newTexture("TextureCreateFromMemory", fmt.Sprintf("%d bytes", len(data)), 1, 1)
}

func (d *Driver) TextureCreateFromPixels(w, h uint32, rgba []byte) native.Handle {
	return d.newTexture("TextureCreateFromPixels", fmt.Sprintf("%dx%d", w, h), w, h)
}

func (d *Driver) TextureDestroy(h native.Handle) {
	d.record("TextureDestroy", h)
	d.Destroyed = append(d.Destroyed, h)
	delete(d.Textures, h)
}

func (d *Driver) TextureGetSize(h native.Handle) (uint32, uint32) {
	d.record("TextureGetSize", h)
	if t, ok := d.Textures[h]; ok {
		return t.Width, t.Height
	}
	return 0, 0
}

func (d *Driver) TextureSetSmooth(h native.Handle, smooth native.Bool) {
	d.record("TextureSetSmooth", h, smooth)
	if t, ok := d.Textures[h]; ok {
		t.Smooth = smooth.Go()
	}
}

func (d *Driver) VideoModeIsValid(mode native.VideoMode) native.Bool {
	d.record("VideoModeIsValid", mode)
	for _, m := range d.Fullscreen {
		if m == mode {
			return native.True
		}
	}
	return native.False
}

func (d *Driver) VideoModeGetDesktopMode() native.VideoMode {
	d.record("VideoModeGetDesktopMode")
	return d.Desktop
}

func (d *Driver) VideoModeGetFullscreenModes() []native.VideoMode {
	d.record("VideoModeGetFullscreenModes")
	return d.Fullscreen
}

var _ native.Driver = (*Driver)(nil)
