// Package window exposes the display modes of the native windowing layer.
//
// A video mode is a width and a height in pixels plus a depth in bits per
// pixel. Video modes are used to set up windows at creation time.
package window

import (
	"fmt"
	"math"

	"sfbind/internal/native"
)

// VideoMode is a display mode. It is a plain value; copy it freely.
type VideoMode struct {
	Width        uint
	Height       uint
	BitsPerPixel uint
}

// NewVideoMode returns a video mode with the given size and depth.
func NewVideoMode(width, height, bitsPerPixel uint) VideoMode {
	return VideoMode{Width: width, Height: height, BitsPerPixel: bitsPerPixel}
}

// IsValid reports whether the mode can be used for a fullscreen window.
// Windowed modes have no such restriction.
// A mode whose fields do not fit the native 32-bit triplet is never valid.
func (m VideoMode) IsValid() bool {
	if !m.fits() {
		return false
	}
	return native.Default().VideoModeIsValid(m.unwrap()).Go()
}

func (m VideoMode) String() string {
	return fmt.Sprintf("%dx%dx%d", m.Width, m.Height, m.BitsPerPixel)
}

// DesktopMode returns the current desktop video mode.
func DesktopMode() VideoMode {
	return wrapMode(native.Default().VideoModeGetDesktopMode())
}

// FullscreenModes returns every mode usable in fullscreen, sorted from best
// to worst so the first entry has the highest width, height and depth.
// It reports false when the display exposes no fullscreen mode.
func FullscreenModes() ([]VideoMode, bool) {
	raw := native.Default().VideoModeGetFullscreenModes()
	if len(raw) == 0 {
		return nil, false
	}
	modes := make([]VideoMode, len(raw))
	for i, m := range raw {
		modes[i] = wrapMode(m)
	}
	return modes, true
}

func wrapMode(m native.VideoMode) VideoMode {
	return VideoMode{
		Width:        uint(m.Width),
		Height:       uint(m.Height),
		BitsPerPixel: uint(m.BitsPerPixel),
	}
}

func (m VideoMode) fits() bool {
	return uint64(m.Width) <= math.MaxUint32 &&
		uint64(m.Height) <= math.MaxUint32 &&
		uint64(m.BitsPerPixel) <= math.MaxUint32
}

// unwrap truncates fields that do not fit; check fits first.
func (m VideoMode) unwrap() native.VideoMode {
	return native.VideoMode{
		Width:        uint32(m.Width),
		Height:       uint32(m.Height),
		BitsPerPixel: uint32(m.BitsPerPixel),
	}
}
