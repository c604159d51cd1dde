package graphics

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"sfbind/internal/handle"
	"sfbind/internal/native"
)

// ErrTextureCreate is returned when the native layer cannot create a texture.
var ErrTextureCreate = errors.New("graphics: native texture creation failed")

// Texture is an image living on the graphics card.
//
// The native texture is shared: its creator holds one reference and every
// shader it is set on holds another. It is released when the last holder lets
// go.
type Texture struct {
	ref     *handle.Shared
	dropped bool
}

// TextureFromFile loads a texture from an image file.
func TextureFromFile(path string) (*Texture, error) {
	cpath, err := native.CStr(path)
	if err != nil {
		return nil, fmt.Errorf("texture path %q: %w", path, err)
	}
	drv, err := native.Lookup()
	if err != nil {
		return nil, err
	}
	t := wrapTexture(drv.TextureCreateFromFile(cpath))
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTextureCreate, path)
	}
	return t, nil
}

// TextureFromMemory loads a texture from an encoded image (PNG, JPEG, BMP,
// TIFF or WebP) held in memory.
func TextureFromMemory(data []byte) (*Texture, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image data", ErrTextureCreate)
	}
	drv, err := native.Lookup()
	if err != nil {
		return nil, err
	}
	t := wrapTexture(drv.TextureCreateFromMemory(data))
	if t == nil {
		return nil, fmt.Errorf("%w: %d bytes of image data", ErrTextureCreate, len(data))
	}
	return t, nil
}

// TextureFromImage uploads img as an RGBA texture.
func TextureFromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrTextureCreate)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	}
	drv, err := native.Lookup()
	if err != nil {
		return nil, err
	}
	t := wrapTexture(drv.TextureCreateFromPixels(uint32(b.Dx()), uint32(b.Dy()), rgba.Pix))
	if t == nil {
		return nil, fmt.Errorf("%w: %dx%d image", ErrTextureCreate, b.Dx(), b.Dy())
	}
	return t, nil
}

// wrapTexture takes ownership of h. It returns nil for the null handle.
func wrapTexture(h native.Handle) *Texture {
	if h.IsNull() {
		return nil
	}
	return &Texture{ref: handle.NewShared(h, native.Default().TextureDestroy)}
}

func (t *Texture) unwrap() native.Handle { return t.ref.Unwrap() }

func (t *Texture) retain() { t.ref.Retain() }

func (t *Texture) release() { t.ref.Release() }

// Size returns the texture size in pixels.
func (t *Texture) Size() (width, height uint) {
	w, h := native.Default().TextureGetSize(t.unwrap())
	return uint(w), uint(h)
}

// SetSmooth enables or disables linear filtering.
func (t *Texture) SetSmooth(smooth bool) {
	native.Default().TextureSetSmooth(t.unwrap(), native.BoolOf(smooth))
}

// Refs returns how many holders keep the native texture alive.
func (t *Texture) Refs() int { return t.ref.Refs() }

// Live reports whether the native texture still exists.
func (t *Texture) Live() bool { return t.ref.Live() }

// Destroy drops the creator's reference. Shaders still holding the texture
// keep it alive. Calling Destroy again does nothing.
func (t *Texture) Destroy() {
	if t.dropped {
		return
	}
	t.dropped = true
	t.release()
}
