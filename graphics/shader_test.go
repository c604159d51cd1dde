package graphics

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"sfbind/internal/native"
	"sfbind/internal/native/nativetest"
	"sfbind/math"
)

func strPtr(s string) *string { return &s }

func newShader(t *testing.T, d *nativetest.Driver) *Shader {
	t.Helper()
	s, err := ShaderFromMemory(nil, strPtr("void main() {}"))
	if err != nil {
		t.Fatalf("ShaderFromMemory: %v", err)
	}
	t.Cleanup(s.Destroy)
	return s
}

func newTexture(t *testing.T) *Texture {
	t.Helper()
	tex, err := TextureFromFile("wave.png")
	if err != nil {
		t.Fatalf("TextureFromFile: %v", err)
	}
	return tex
}

func TestShaderBothStagesAbsent(t *testing.T) {
	d := nativetest.New().Install(t)
	d.FailShaders = true

	s, err := ShaderFromFile(nil, nil)
	if s != nil {
		t.Fatal("expected no shader when the native layer returns null")
	}
	if !errors.Is(err, ErrShaderCreate) {
		t.Errorf("expected ErrShaderCreate, got %v", err)
	}

	call := d.LastCall()
	if call.Op != "ShaderCreateFromFile" {
		t.Fatalf("expected ShaderCreateFromFile, got %s", call)
	}
	for i, arg := range call.Args {
		if arg.(*string) != nil {
			t.Errorf("arg %d: expected null text, got %q", i, *arg.(*string))
		}
	}
}

func TestShaderFromMemoryUsesMemoryEntryPoint(t *testing.T) {
	d := nativetest.New().Install(t)

	vert := "void main() { gl_Position = vec4(0.0); }"
	s, err := ShaderFromMemory(&vert, nil)
	if err != nil {
		t.Fatalf("ShaderFromMemory: %v", err)
	}
	defer s.Destroy()

	if len(d.CallsTo("ShaderCreateFromFile")) != 0 {
		t.Error("from-memory construction must not go through the file entry point")
	}
	ns := d.Shaders[s.unwrap()]
	if ns == nil {
		t.Fatal("native shader missing")
	}
	if ns.Vertex == nil || *ns.Vertex != vert {
		t.Errorf("vertex source: expected %q, got %v", vert, ns.Vertex)
	}
	if ns.Fragment != nil {
		t.Errorf("fragment source: expected null, got %q", *ns.Fragment)
	}
}

func TestShaderFromFilePassesPaths(t *testing.T) {
	d := nativetest.New().Install(t)

	s, err := ShaderFromFile(strPtr("blur.vert"), strPtr("blur.frag"))
	if err != nil {
		t.Fatalf("ShaderFromFile: %v", err)
	}
	defer s.Destroy()

	ns := d.Shaders[s.unwrap()]
	if *ns.Vertex != "blur.vert" || *ns.Fragment != "blur.frag" {
		t.Errorf("expected blur.vert/blur.frag, got %q/%q", *ns.Vertex, *ns.Fragment)
	}
}

func TestShaderEmbeddedNUL(t *testing.T) {
	d := nativetest.New().Install(t)

	_, err := ShaderFromMemory(strPtr("void\x00main"), nil)
	if !errors.Is(err, native.ErrEmbeddedNUL) {
		t.Errorf("expected ErrEmbeddedNUL, got %v", err)
	}
	if len(d.Calls) != 0 {
		t.Errorf("no native call expected, got %v", d.Calls)
	}
}

func TestShaderSetParameters(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)
	ns := d.Shaders[s.unwrap()]

	s.SetFloat("time", 0.5)
	s.SetFloat2("offset", 1, 2)
	s.SetFloat3("light", 1, 2, 3)
	s.SetFloat4("tint", 1, 2, 3, 4)
	s.SetVec2("size", math.NewVec2(640, 480))
	s.SetVec3("eye", math.NewVec3(0, 1, 5))
	s.SetColor("color", Color{255, 127, 0, 255})

	tests := []struct {
		name string
		want []float32
	}{
		{"time", []float32{0.5}},
		{"offset", []float32{1, 2}},
		{"light", []float32{1, 2, 3}},
		{"tint", []float32{1, 2, 3, 4}},
		{"size", []float32{640, 480}},
		{"eye", []float32{0, 1, 5}},
	}
	for _, tt := range tests {
		got := ns.Floats[tt.name]
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
				break
			}
		}
	}

	if c := ns.Colors["color"]; c != [4]uint8{255, 127, 0, 255} {
		t.Errorf("color: expected raw bytes, got %v", c)
	}
}

func TestShaderUnknownNameIsSilent(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)

	before := len(d.Calls)
	s.SetFloat("bad\x00name", 1)
	if len(d.Calls) != before {
		t.Errorf("expected name with embedded NUL to be dropped, got %v", d.LastCall())
	}
}

func TestShaderRetainsTexture(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)
	tex := newTexture(t)
	th := tex.unwrap()

	s.SetTexture("wave", tex)
	if tex.Refs() != 2 {
		t.Fatalf("Refs: expected 2 after SetTexture, got %d", tex.Refs())
	}

	tex.Destroy()
	if d.IsDestroyed(th) {
		t.Fatal("texture destroyed while the shader still holds it")
	}
	if !tex.Live() {
		t.Fatal("texture must stay live while the shader holds it")
	}
	if got, ok := s.Texture("wave"); !ok || got != tex {
		t.Error("shader lost its texture reference")
	}

	s.Destroy()
	if !d.IsDestroyed(th) {
		t.Error("texture must be released with its last holder")
	}
	if tex.Live() {
		t.Error("texture must not be live after its last holder is gone")
	}
}

func TestShaderDestroyReleasesTexturesFirst(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)
	sh := s.unwrap()
	tex := newTexture(t)
	th := tex.unwrap()

	s.SetTexture("wave", tex)
	tex.Destroy()
	s.Destroy()

	want := []native.Handle{th, sh}
	if !slices.Equal(d.Destroyed, want) {
		t.Errorf("Destroy: expected release order %v, got %v", want, d.Destroyed)
	}
}

func TestShaderReplacesTextureSlot(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)
	first := newTexture(t)
	second := newTexture(t)
	defer second.Destroy()

	s.SetTexture("wave", first)
	s.SetTexture("wave", second)
	if first.Refs() != 1 {
		t.Errorf("replaced texture: expected 1 ref, got %d", first.Refs())
	}
	if second.Refs() != 2 {
		t.Errorf("new texture: expected 2 refs, got %d", second.Refs())
	}

	s.SetTexture("wave", second)
	if second.Refs() != 2 {
		t.Errorf("same texture twice: expected 2 refs, got %d", second.Refs())
	}

	h := first.unwrap()
	first.Destroy()
	if !d.IsDestroyed(h) {
		t.Error("replaced texture must be released by its creator alone")
	}
}

func TestShaderSharedTextureAcrossShaders(t *testing.T) {
	d := nativetest.New().Install(t)
	a := newShader(t, d)
	b := newShader(t, d)
	tex := newTexture(t)
	th := tex.unwrap()

	a.SetTexture("tex", tex)
	b.SetTexture("tex", tex)
	tex.Destroy()
	a.Destroy()
	if d.IsDestroyed(th) {
		t.Fatal("texture released while another shader holds it")
	}
	b.Destroy()
	if !d.IsDestroyed(th) {
		t.Error("texture must be released with the last shader")
	}
}

func TestShaderCurrentTexture(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)
	tex := newTexture(t)
	defer tex.Destroy()

	s.SetTexture("source", tex)
	s.SetCurrentTexture("source")

	if tex.Refs() != 1 {
		t.Errorf("current texture sentinel must drop the held texture, got %d refs", tex.Refs())
	}
	if _, ok := s.Texture("source"); ok {
		t.Error("slot must be empty after SetCurrentTexture")
	}
	if ns := d.Shaders[s.unwrap()]; ns.Current != "source" {
		t.Errorf("expected native current texture slot %q, got %q", "source", ns.Current)
	}
}

func TestShaderDestroyTwice(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)

	s.Destroy()
	s.Destroy()
	if n := len(d.CallsTo("ShaderDestroy")); n != 1 {
		t.Errorf("expected one native destroy, got %d", n)
	}
}

func TestShaderUseAfterDestroy(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)
	s.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("expected panic when using a destroyed shader")
		}
	}()
	s.SetFloat("time", 1)
}

func TestShaderBind(t *testing.T) {
	d := nativetest.New().Install(t)
	s := newShader(t, d)

	s.Bind()
	if ns := d.Shaders[s.unwrap()]; ns.Bound != 1 {
		t.Errorf("expected one bind, got %d", ns.Bound)
	}
}

func TestIsShaderAvailable(t *testing.T) {
	d := nativetest.New().Install(t)

	first := IsShaderAvailable()
	second := IsShaderAvailable()
	if !first || first != second {
		t.Errorf("expected stable true, got %v then %v", first, second)
	}
	if d.AvailableCalls != 2 {
		t.Errorf("expected 2 native queries, got %d", d.AvailableCalls)
	}

	d.Available = false
	if IsShaderAvailable() {
		t.Error("expected false when the native layer has no shader support")
	}
}

func TestShaderFromWGSL(t *testing.T) {
	d := nativetest.New().Install(t)

	const src = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(-0.5, -0.5),
        vec2<f32>(0.5, -0.5),
        vec2<f32>(0.0, 0.5)
    );
    return vec4<f32>(pos[idx], 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
	s, err := ShaderFromWGSL(src, strPtr("vs_main"), strPtr("fs_main"))
	if err != nil {
		t.Fatalf("ShaderFromWGSL: %v", err)
	}
	defer s.Destroy()

	ns := d.Shaders[s.unwrap()]
	for stage, code := range map[string]*string{"vertex": ns.Vertex, "fragment": ns.Fragment} {
		if code == nil {
			t.Errorf("%s: expected GLSL source", stage)
			continue
		}
		if !strings.HasPrefix(*code, "#version 410") {
			t.Errorf("%s: expected GLSL 4.10 source, got %q", stage, firstLine(*code))
		}
	}
}

func TestShaderFromWGSLParseError(t *testing.T) {
	d := nativetest.New().Install(t)

	if _, err := ShaderFromWGSL("fn (", nil, strPtr("fs_main")); err == nil {
		t.Error("expected error for invalid WGSL")
	}
	if len(d.Calls) != 0 {
		t.Errorf("no native call expected, got %v", d.Calls)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestNoDriver(t *testing.T) {
	t.Cleanup(native.SetDefault(nil))

	if IsShaderAvailable() {
		t.Error("IsShaderAvailable: expected false without a native layer")
	}
	if _, err := ShaderFromMemory(nil, nil); !errors.Is(err, native.ErrNoDriver) {
		t.Errorf("ShaderFromMemory: expected ErrNoDriver, got %v", err)
	}
	if _, err := TextureFromFile("a.png"); !errors.Is(err, native.ErrNoDriver) {
		t.Errorf("TextureFromFile: expected ErrNoDriver, got %v", err)
	}
}
