package native

import "fmt"

// Driver is the native multimedia layer. Implementations are not safe for
// concurrent use; callers keep to the thread that owns the graphics context.
type Driver interface {
	ShaderCreateFromFile(vertexPath, fragmentPath Str) Handle
	ShaderCreateFromMemory(vertexSrc, fragmentSrc Str) Handle
	ShaderDestroy(shader Handle)
	ShaderSetFloatParameter(shader Handle, name Str, x float32)
	ShaderSetFloat2Parameter(shader Handle, name Str, x, y float32)
	ShaderSetFloat3Parameter(shader Handle, name Str, x, y, z float32)
	ShaderSetFloat4Parameter(shader Handle, name Str, x, y, z, w float32)
	// ShaderSetColorParameter takes components in [0,255]; the driver
	// normalizes them to [0,1] before they reach the shader.
	ShaderSetColorParameter(shader Handle, name Str, r, g, b, a uint8)
	// ShaderSetTextureParameter stores the texture handle, not a copy.
	ShaderSetTextureParameter(shader Handle, name Str, texture Handle)
	ShaderSetCurrentTextureParameter(shader Handle, name Str)
	ShaderBind(shader Handle)
	ShaderIsAvailable() Bool

	TextureCreateFromFile(path Str) Handle
	TextureCreateFromMemory(data []byte) Handle
	TextureCreateFromPixels(width, height uint32, rgba []byte) Handle
	TextureDestroy(texture Handle)
	TextureGetSize(texture Handle) (width, height uint32)
	TextureSetSmooth(texture Handle, smooth Bool)

	VideoModeIsValid(mode VideoMode) Bool
	VideoModeGetDesktopMode() VideoMode
	// VideoModeGetFullscreenModes returns the supported fullscreen modes
	// sorted best to worst.
	VideoModeGetFullscreenModes() []VideoMode
}

var (
	current Driver
	opener  func() (Driver, error)
)

// Register sets the function used to open a driver on first use when none
// has been installed with SetDefault. Driver packages call it from init.
func Register(open func() (Driver, error)) {
	opener = open
}

// Lookup returns the process-wide driver, opening the registered one on
// first use.
func Lookup() (Driver, error) {
	if current != nil {
		return current, nil
	}
	if opener == nil {
		return nil, ErrNoDriver
	}
	d, err := opener()
	if err != nil {
		return nil, fmt.Errorf("native: open driver: %w", err)
	}
	current = d
	return d, nil
}

// Default is Lookup for callers that already hold a native handle, which
// implies a driver. It panics if there is none.
func Default() Driver {
	d, err := Lookup()
	if err != nil {
		panic(err)
	}
	return d
}

// SetDefault installs d as the process-wide driver and returns a function
// restoring the previous one.
func SetDefault(d Driver) (restore func()) {
	prev := current
	current = d
	return func() { current = prev }
}
