package opengl

import (
	"cmp"
	"slices"

	"github.com/go-gl/glfw/v3.3/glfw"

	"sfbind/internal/native"
)

func (d *Driver) VideoModeIsValid(mode native.VideoMode) native.Bool {
	return native.BoolOf(slices.Contains(d.VideoModeGetFullscreenModes(), mode))
}

func (d *Driver) VideoModeGetDesktopMode() native.VideoMode {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return native.VideoMode{}
	}
	return modeOf(monitor.GetVideoMode())
}

func (d *Driver) VideoModeGetFullscreenModes() []native.VideoMode {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return nil
	}
	raw := monitor.GetVideoModes()
	modes := make([]native.VideoMode, 0, len(raw))
	for _, vm := range raw {
		modes = append(modes, modeOf(vm))
	}
	return bestFirst(modes)
}

func modeOf(vm *glfw.VidMode) native.VideoMode {
	if vm == nil {
		return native.VideoMode{}
	}
	return native.VideoMode{
		Width:        uint32(vm.Width),
		Height:       uint32(vm.Height),
		BitsPerPixel: uint32(vm.RedBits + vm.GreenBits + vm.BlueBits),
	}
}

// bestFirst sorts modes by depth, then width, then height, greatest first,
// and drops duplicates left by modes differing only in refresh rate.
func bestFirst(modes []native.VideoMode) []native.VideoMode {
	slices.SortFunc(modes, func(a, b native.VideoMode) int {
		if c := cmp.Compare(b.BitsPerPixel, a.BitsPerPixel); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Width, a.Width); c != 0 {
			return c
		}
		return cmp.Compare(b.Height, a.Height)
	})
	return slices.Compact(modes)
}
