package opengl

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"go.uber.org/zap"

	"sfbind/internal/native"
)

type texture struct {
	id     uint32
	width  uint32
	height uint32
	smooth bool
}

func (d *Driver) TextureCreateFromFile(path native.Str) native.Handle {
	f, err := os.Open(path.String())
	if err != nil {
		Logger().Warn("failed to open texture file", zap.String("path", path.String()), zap.Error(err))
		return native.Null
	}
	defer f.Close()
	return d.decodeAndUpload(f, path.String())
}

func (d *Driver) TextureCreateFromMemory(data []byte) native.Handle {
	return d.decodeAndUpload(bytes.NewReader(data), fmt.Sprintf("<%d bytes>", len(data)))
}

func (d *Driver) TextureCreateFromPixels(width, height uint32, rgba []byte) native.Handle {
	if uint64(len(rgba)) < uint64(width)*uint64(height)*4 {
		Logger().Warn("pixel buffer too small for texture",
			zap.Uint32("width", width), zap.Uint32("height", height), zap.Int("bytes", len(rgba)))
		return native.Null
	}
	return d.upload(width, height, rgba)
}

func (d *Driver) decodeAndUpload(r io.Reader, source string) native.Handle {
	img, format, err := image.Decode(r)
	if err != nil {
		Logger().Warn("failed to decode texture image", zap.String("source", source), zap.Error(err))
		return native.Null
	}
	Logger().Debug("decoded texture image", zap.String("source", source), zap.String("format", format))

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return d.upload(uint32(b.Dx()), uint32(b.Dy()), rgba.Pix)
}

// upload creates a GL texture from tightly packed RGBA8 pixels, top row first.
func (d *Driver) upload(width, height uint32, pixels []byte) native.Handle {
	if width == 0 || height == 0 {
		Logger().Warn("texture has no pixels")
		return native.Null
	}
	if int64(width) > int64(d.maxTextureSize) || int64(height) > int64(d.maxTextureSize) {
		Logger().Warn("texture exceeds the maximum size",
			zap.Uint32("width", width), zap.Uint32("height", height), zap.Int32("max", d.maxTextureSize))
		return native.Null
	}

	var prev int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &prev)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)

	gl.BindTexture(gl.TEXTURE_2D, uint32(prev))

	d.textures[id] = &texture{id: id, width: width, height: height}
	return native.Handle(id)
}

func (d *Driver) TextureDestroy(h native.Handle) {
	t, ok := d.textures[uint32(h)]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &t.id)
	delete(d.textures, uint32(h))
}

func (d *Driver) TextureGetSize(h native.Handle) (uint32, uint32) {
	t, ok := d.textures[uint32(h)]
	if !ok {
		return 0, 0
	}
	return t.width, t.height
}

func (d *Driver) TextureSetSmooth(h native.Handle, smooth native.Bool) {
	t, ok := d.textures[uint32(h)]
	if !ok || t.smooth == smooth.Go() {
		return
	}
	t.smooth = smooth.Go()

	filter := int32(gl.NEAREST)
	if t.smooth {
		filter = gl.LINEAR
	}

	var prev int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &prev)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.BindTexture(gl.TEXTURE_2D, uint32(prev))
}
