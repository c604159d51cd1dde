// Package graphics wraps the native layer's shaders and textures.
//
// Every wrapper owns exactly one native handle and must be destroyed
// explicitly on the thread that owns the graphics context:
//
//	if !graphics.IsShaderAvailable() {
//	    return errors.New("shaders unsupported")
//	}
//	tex, err := graphics.TextureFromFile("wave.png")
//	if err != nil {
//	    return err
//	}
//	defer tex.Destroy()
//
//	frag := waveSource
//	shader, err := graphics.ShaderFromMemory(nil, &frag)
//	if err != nil {
//	    return err
//	}
//	defer shader.Destroy()
//
//	shader.SetTexture("wave", tex)
//	shader.SetFloat("time", 0.5)
//
// A shader keeps every texture set on it alive until the slot is replaced or
// the shader is destroyed, even if the texture's creator destroys it first.
package graphics
