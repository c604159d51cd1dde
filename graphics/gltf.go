package graphics

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// TexturesFromGLTF loads every image of a .gltf or .glb document as a
// texture, in document order. Images stored in buffer views, data URIs and
// external files are all supported.
//
// On error, textures created so far are destroyed.
func TexturesFromGLTF(path string) ([]*Texture, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	textures := make([]*Texture, 0, len(doc.Images))
	fail := func(err error) ([]*Texture, error) {
		for _, t := range textures {
			t.Destroy()
		}
		return nil, err
	}

	for i, img := range doc.Images {
		data, err := gltfImageData(doc, img, dir)
		if err != nil {
			return fail(fmt.Errorf("gltf image %d: %w", i, err))
		}
		tex, err := TextureFromMemory(data)
		if err != nil {
			return fail(fmt.Errorf("gltf image %d: %w", i, err))
		}
		textures = append(textures, tex)
	}
	return textures, nil
}

func gltfImageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		idx := *img.BufferView
		if idx < 0 || idx >= len(doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range (%d views)", idx, len(doc.BufferViews))
		}
		return modeler.ReadBufferView(doc, doc.BufferViews[idx])
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		// Relative URIs are percent-encoded, e.g. "my%20tex.png".
		name, err := url.PathUnescape(img.URI)
		if err != nil {
			return nil, fmt.Errorf("image uri %q: %w", img.URI, err)
		}
		return os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	}
	return nil, fmt.Errorf("image %q has no data", img.Name)
}
