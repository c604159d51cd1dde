// Package opengl is the production native layer. Shaders and textures go
// through an OpenGL 4.1 core context, display modes through GLFW.
//
// Importing the package registers it, so the wrapper packages open it on
// first use:
//
//	import _ "sfbind/opengl"
//
// Call Open instead to choose the context settings. GLFW must be driven from
// the main thread; the package locks it in init.
package opengl

import (
	"fmt"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"sfbind/internal/native"
)

func init() {
	runtime.LockOSThread()
	native.Register(func() (native.Driver, error) {
		return Open(DefaultConfig())
	})
}

// Config selects the context the driver creates.
type Config struct {
	GLMajor int
	GLMinor int
	// Visible shows the context window. It is hidden by default since the
	// driver only needs it for its GL context.
	Visible bool
	Title   string
	Width   int
	Height  int
}

func DefaultConfig() Config {
	return Config{
		GLMajor: 4,
		GLMinor: 1,
		Visible: false,
		Title:   "sfbind",
		Width:   1,
		Height:  1,
	}
}

// Driver implements native.Driver on top of OpenGL and GLFW.
type Driver struct {
	window   *glfw.Window
	programs map[uint32]*program
	textures map[uint32]*texture

	glslVersion     string
	maxTextureUnits int32
	maxTextureSize  int32

	// restore reinstalls the driver that was current before Open.
	restore func()
}

// Open initializes GLFW, creates the context window and loads OpenGL. The
// returned driver is also installed as the process-wide driver.
func Open(cfg Config) (*Driver, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, boolToInt(cfg.Visible))

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create context window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &Driver{
		window:   window,
		programs: make(map[uint32]*program),
		textures: make(map[uint32]*texture),
	}
	d.glslVersion = gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &d.maxTextureUnits)
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &d.maxTextureSize)

	Logger().Info("opengl driver opened",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", d.glslVersion),
		zap.Int32("textureUnits", d.maxTextureUnits),
	)

	d.install()
	return d, nil
}

func (d *Driver) install() {
	d.restore = native.SetDefault(d)
}

func (d *Driver) uninstall() {
	if d.restore != nil {
		d.restore()
		d.restore = nil
	}
}

// Window returns the window owning the GL context.
func (d *Driver) Window() *glfw.Window { return d.window }

// Close releases every GL object still alive, uninstalls the driver,
// destroys the context window and terminates GLFW.
func (d *Driver) Close() {
	if len(d.programs) > 0 || len(d.textures) > 0 {
		Logger().Warn("closing driver with live native objects",
			zap.Int("shaders", len(d.programs)),
			zap.Int("textures", len(d.textures)),
		)
	}
	for id := range d.programs {
		d.ShaderDestroy(native.Handle(id))
	}
	for id := range d.textures {
		d.TextureDestroy(native.Handle(id))
	}
	d.uninstall()
	d.window.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

var _ native.Driver = (*Driver)(nil)
